// Package config reads the backend configuration from the environment.
package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	APIURL         *url.URL
	Port           string
	DataDir        string
	JWTSecret      []byte
	GeminiAPIKey   string
	GeminiModel    string
	InsightTimeout time.Duration
	Currency       string
	ResetOnCorrupt bool
}

// Load reads a .env file if there is one and then the environment.
func Load(files ...string) (Config, error) {
	err := godotenv.Load(files...)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Msg("no .env file found, using environment variables")
	} else if err != nil {
		return Config{}, fmt.Errorf("%w: could not read .env file: %w", ErrInvalid, err)
	}

	return FromEnv(os.LookupEnv)
}

// FromEnv builds the configuration from a lookup function such as
// os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return fallback
	}

	c := Config{
		Port:         get("PORT", "8080"),
		DataDir:      get("DATA_DIR", "data"),
		GeminiAPIKey: get("GEMINI_API_KEY", get("API_KEY", "")),
		GeminiModel:  get("GEMINI_MODEL", "gemini-2.5-flash"),
	}

	u, err := url.Parse(get("API_URL", "http://localhost:8080"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, fmt.Errorf("%w: API_URL must be an absolute URL", ErrInvalid)
	}
	c.APIURL = u

	cur, err := parseCurrency(get("CURRENCY", ""), get("LOCALE", ""))
	if err != nil {
		return Config{}, err
	}
	c.Currency = cur

	c.ResetOnCorrupt, err = strconv.ParseBool(get("RESET_ON_CORRUPT", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: RESET_ON_CORRUPT must be a boolean", ErrInvalid)
	}

	c.InsightTimeout, err = time.ParseDuration(get("INSIGHT_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: INSIGHT_TIMEOUT: %w", ErrInvalid, err)
	}

	if secret := get("JWT_SECRET", ""); secret != "" {
		c.JWTSecret = []byte(secret)
	} else {
		log.Warn().Msg("JWT_SECRET is not set, sessions will not survive a restart")
		c.JWTSecret = []byte(rand.Text())
	}

	return c, nil
}

// parseCurrency returns the ISO 4217 code of the display currency. An
// explicit currency wins over the one derived from the locale.
func parseCurrency(code, locale string) (string, error) {
	if code != "" {
		unit, err := currency.ParseISO(strings.ToUpper(code))
		if err != nil {
			return "", fmt.Errorf("%w: CURRENCY %q is not an ISO 4217 code", ErrInvalid, code)
		}
		return unit.String(), nil
	}

	if locale != "" {
		tag, err := language.Parse(locale)
		if err != nil {
			return "", fmt.Errorf("%w: LOCALE %q: %w", ErrInvalid, locale, err)
		}

		unit, ok := currency.FromTag(tag)
		if ok == language.No {
			return "", fmt.Errorf("%w: no currency known for LOCALE %q", ErrInvalid, locale)
		}
		return unit.String(), nil
	}

	return "THB", nil
}
