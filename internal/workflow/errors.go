package workflow

import (
	"errors"
	"fmt"

	apperrors "github.com/goliatone/go-errors"

	"rentaldesk/internal/api"
)

// Text codes of the workflow error taxonomy
const (
	CodeFetchFailed       = "FETCH_FAILED"
	CodeMutationRejected  = "MUTATION_REJECTED"
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeInvalidTransition = "INVALID_TRANSITION"
)

// ErrInvalidTransition is returned when a modal is opened while another one is active
var ErrInvalidTransition = apperrors.New("invalid modal transition", apperrors.CategoryBadInput).
	WithTextCode(CodeInvalidTransition)

func fetchFailed(workflow, resource string, cause error) error {
	return apperrors.Wrap(cause, apperrors.CategoryExternal, fmt.Sprintf("could not load %s", resource)).
		WithTextCode(CodeFetchFailed).
		WithMetadata(map[string]any{"workflow": workflow, "resource": resource})
}

// mutationRejected builds the error surfaced for a refused mutation. message is
// what the user sees; cause may be nil when the server answered success:false.
func mutationRejected(workflow, op string, id int, message string, cause error) error {
	var err *apperrors.Error
	if cause == nil {
		err = apperrors.New(message, apperrors.CategoryExternal)
	} else {
		err = apperrors.Wrap(cause, apperrors.CategoryExternal, message)
		err.Message = message
	}
	return err.WithTextCode(CodeMutationRejected).
		WithMetadata(map[string]any{"workflow": workflow, "op": op, "id": id})
}

func validationFailed(workflow, op, message string) error {
	return apperrors.New(message, apperrors.CategoryValidation).
		WithTextCode(CodeValidationFailed).
		WithMetadata(map[string]any{"workflow": workflow, "op": op})
}

func invalidTransition(workflow string, from, to ModalKind) error {
	return ErrInvalidTransition.Clone().
		WithMetadata(map[string]any{"workflow": workflow, "from": from.String(), "to": to.String()})
}

func hasCode(err error, code string) bool {
	var ge *apperrors.Error
	return errors.As(err, &ge) && ge.TextCode == code
}

// IsFetchFailed reports whether err is a list or detail load failure
func IsFetchFailed(err error) bool { return hasCode(err, CodeFetchFailed) }

// IsMutationRejected reports whether err is a refused create, update, delete or rent
func IsMutationRejected(err error) bool { return hasCode(err, CodeMutationRejected) }

// IsValidationFailed reports whether err stopped a request before it was sent
func IsValidationFailed(err error) bool { return hasCode(err, CodeValidationFailed) }

// IsInvalidTransition reports whether err is a rejected modal transition
func IsInvalidTransition(err error) bool { return hasCode(err, CodeInvalidTransition) }

// Message returns the user facing text of err
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ge *apperrors.Error
	if errors.As(err, &ge) {
		return ge.Message
	}
	return err.Error()
}

// serverMessage picks the message the API attached to a failed response, if any
func serverMessage(err error) string {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}
	return ""
}
