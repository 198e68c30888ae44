package ledger

import "errors"

var (
	ErrTransactionNotFound    = errors.New("there is no transaction with this ID")
	ErrSourceNotFound         = errors.New("there is no source with this ID")
	ErrCategoryNotFound       = errors.New("there is no category with this ID")
	ErrBudgetNotFound         = errors.New("there is no budget with this ID")
	ErrGoalNotFound           = errors.New("there is no goal with this ID")
	ErrInvalidTransactionType = errors.New("transaction type must be one of EXPENSE, INCOME, TRANSFER")
	ErrInvalidSourceKind      = errors.New("source type must be one of BANK, CASH, OTHER")
	ErrInvalidPeriod          = errors.New("budget period must be one of WEEKLY, MONTHLY")
	ErrNegativeAmount         = errors.New("amount must not be negative")
	ErrDepositNotPositive     = errors.New("deposit amount must be positive")
	ErrInsufficientFunds      = errors.New("the source does not hold enough money")
	ErrCorruptSnapshot        = errors.New("stored ledger data could not be decoded")
	ErrUnsupportedVersion     = errors.New("stored ledger data has an unsupported version")
	ErrPersistence            = errors.New("ledger change was applied but could not be saved")
)

// IsNotFound reports whether err is one of the not-found errors of this package.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrSourceNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrBudgetNotFound) ||
		errors.Is(err, ErrGoalNotFound)
}

// IsValidation reports whether err was caused by invalid input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidTransactionType) ||
		errors.Is(err, ErrInvalidSourceKind) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrDepositNotPositive) ||
		errors.Is(err, ErrInsufficientFunds)
}
