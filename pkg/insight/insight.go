// Package insight asks a Gemini model for a short review of recent spending.
//
// Insights are advisory. Every failure is logged and reported as "no
// insight", never as an error.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/smartspend/backend/pkg/ledger"
	"google.golang.org/genai"
)

const (
	DefaultModel = "gemini-2.5-flash"

	// recentTransactions is how many of the most recent transactions are sent.
	recentTransactions = 50
)

type Trend string

const (
	Increasing Trend = "increasing"
	Decreasing Trend = "decreasing"
	Stable     Trend = "stable"
)

// Insight is the model's review of the ledger.
type Insight struct {
	Summary       string `json:"summary" example:"You spent most on food this month."`
	SpendingTrend Trend  `json:"spendingTrend" example:"stable"`
	ActionableTip string `json:"actionableTip" example:"Cook at home twice a week."`
}

// Models is the part of the genai client that generates content.
// *genai.Models satisfies it.
type Models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Generator struct {
	models  Models
	model   string
	timeout time.Duration
}

// New creates a generator. A nil Models disables insights.
func New(models Models, model string, timeout time.Duration) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{models: models, model: model, timeout: timeout}
}

var schema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary": {
			Type:        genai.TypeString,
			Description: "A friendly 1-sentence summary of the user's recent spending behavior.",
		},
		"spendingTrend": {
			Type: genai.TypeString,
			Enum: []string{string(Increasing), string(Decreasing), string(Stable)},
		},
		"actionableTip": {
			Type:        genai.TypeString,
			Description: "A specific, short advice based on the data to help them save money.",
		},
	},
	Required: []string{"summary", "spendingTrend", "actionableTip"},
}

// Analyze returns an insight for the snapshot, or nil if none could be
// generated.
func (g *Generator) Analyze(ctx context.Context, s ledger.Snapshot) *Insight {
	if g == nil || g.models == nil {
		log.Warn().Msg("no Gemini API key configured, skipping insight")
		return nil
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	prompt, err := Prompt(s)
	if err != nil {
		log.Error().Err(err).Msg("could not build insight prompt")
		return nil
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		log.Error().Err(err).Str("model", g.model).Msg("Gemini API error")
		return nil
	}

	insight, err := parse(resp.Text())
	if err != nil {
		log.Error().Err(err).Str("model", g.model).Msg("could not parse insight")
		return nil
	}

	return insight
}

type promptTransaction struct {
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     time.Time       `json:"date"`
	Note     string          `json:"note"`
}

// Prompt builds the request text from the balances and the most recent
// transactions.
func Prompt(s ledger.Snapshot) (string, error) {
	recent := s.Transactions
	if len(recent) > recentTransactions {
		recent = recent[:recentTransactions]
	}

	categories := make(map[string]string, len(s.Categories))
	for _, c := range s.Categories {
		categories[c.ID] = c.Name
	}

	list := make([]promptTransaction, 0, len(recent))
	for _, t := range recent {
		name, ok := categories[t.CategoryID]
		if !ok {
			name = "Unknown"
		}
		list = append(list, promptTransaction{Amount: t.Amount, Category: name, Date: t.Date, Note: t.Note})
	}

	var data strings.Builder
	enc := json.NewEncoder(&data)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(list); err != nil {
		return "", err
	}

	sources := make([]string, 0, len(s.Sources))
	for _, src := range s.Sources {
		sources = append(sources, fmt.Sprintf("%s: %s", src.Name, src.Balance))
	}

	var b strings.Builder
	b.WriteString("You are a personal financial assistant. Analyze the provided financial data and provide insights. Data:\n")
	fmt.Fprintf(&b, "Current Total Balance: %s\n", s.Balance())
	fmt.Fprintf(&b, "Sources: %s\n", strings.Join(sources, ", "))
	fmt.Fprintf(&b, "Recent Transactions:\n%s", data.String())

	return b.String(), nil
}

func parse(text string) (*Insight, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, "```", ""))
	if cleaned == "" {
		return nil, fmt.Errorf("empty response")
	}

	var insight Insight
	if err := json.Unmarshal([]byte(cleaned), &insight); err != nil {
		return nil, err
	}
	return &insight, nil
}
