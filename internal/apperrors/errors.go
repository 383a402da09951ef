package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnbalancedEntry indicates that a journal entry's debit and credit totals differ.
// Nothing is persisted when this is returned.
var ErrUnbalancedEntry = errors.New("journal entry debits and credits do not balance")

// ErrEmptyEntry indicates that a journal entry was submitted with no lines.
var ErrEmptyEntry = errors.New("journal entry has no lines")

// ErrInvalidAccountType indicates an account type outside the closed enum.
var ErrInvalidAccountType = errors.New("invalid account type")

// ErrBalanceConflict indicates lock contention while updating a ledger balance.
// Callers should retry the whole journal-entry transaction.
var ErrBalanceConflict = errors.New("concurrent balance update conflict")

// ErrAccountReferenced indicates an attempt to delete an account that has
// posted journal lines.
var ErrAccountReferenced = errors.New("account is referenced by journal lines")
