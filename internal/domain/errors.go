package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind groups error codes by how the boundary layer reports them.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// ErrorCode identifies a specific failure.
type ErrorCode string

const (
	CodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	CodeUnauthorized         ErrorCode = "UNAUTHORIZED"
	CodeInvalidCredentials   ErrorCode = "INVALID_CREDENTIALS"
	CodeForbidden            ErrorCode = "FORBIDDEN"
	CodeGymNotFound          ErrorCode = "GYM_NOT_FOUND"
	CodeCampaignNotFound     ErrorCode = "CAMPAIGN_NOT_FOUND"
	CodeNoActiveCampaign     ErrorCode = "NO_ACTIVE_CAMPAIGN"
	CodeReferralCodeNotFound ErrorCode = "REFERRAL_CODE_NOT_FOUND"
	CodeRewardNotFound       ErrorCode = "REWARD_NOT_FOUND"
	CodeOwnerNotFound        ErrorCode = "OWNER_NOT_FOUND"
	CodeEmailExists          ErrorCode = "EMAIL_EXISTS"
	CodeAlreadyVerified      ErrorCode = "ALREADY_VERIFIED"
	CodeRewardAlreadyGiven   ErrorCode = "REWARD_ALREADY_GIVEN"
)

// Issue is one field-level validation failure.
type Issue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// DomainError is a classified failure. errors.Is matches on Code, so a copy
// carrying issues still matches its sentinel.
type DomainError struct {
	Kind    Kind
	Code    ErrorCode
	Message string
	Issues  []Issue
}

func (e *DomainError) Error() string {
	if len(e.Issues) == 0 {
		return e.Message
	}
	fields := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		fields = append(fields, is.Field)
	}
	return e.Message + " (" + strings.Join(fields, ", ") + ")"
}

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

var (
	ErrValidation         = &DomainError{Kind: KindValidation, Code: CodeValidationFailed, Message: "validation failed"}
	ErrUnauthorized       = &DomainError{Kind: KindUnauthorized, Code: CodeUnauthorized, Message: "unauthorized"}
	ErrInvalidCredentials = &DomainError{Kind: KindUnauthorized, Code: CodeInvalidCredentials, Message: "invalid email or password"}
	ErrForbidden          = &DomainError{Kind: KindForbidden, Code: CodeForbidden, Message: "forbidden for this gym"}

	ErrGymNotFound          = &DomainError{Kind: KindNotFound, Code: CodeGymNotFound, Message: "gym not found"}
	ErrCampaignNotFound     = &DomainError{Kind: KindNotFound, Code: CodeCampaignNotFound, Message: "campaign not found"}
	ErrNoActiveCampaign     = &DomainError{Kind: KindNotFound, Code: CodeNoActiveCampaign, Message: "no active campaign found"}
	ErrReferralCodeNotFound = &DomainError{Kind: KindNotFound, Code: CodeReferralCodeNotFound, Message: "invalid referral code"}
	ErrRewardNotFound       = &DomainError{Kind: KindNotFound, Code: CodeRewardNotFound, Message: "reward not found"}
	ErrOwnerNotFound        = &DomainError{Kind: KindNotFound, Code: CodeOwnerNotFound, Message: "owner not found"}

	ErrEmailExists        = &DomainError{Kind: KindConflict, Code: CodeEmailExists, Message: "email already registered"}
	ErrAlreadyVerified    = &DomainError{Kind: KindConflict, Code: CodeAlreadyVerified, Message: "this member has already been verified"}
	ErrRewardAlreadyGiven = &DomainError{Kind: KindConflict, Code: CodeRewardAlreadyGiven, Message: "reward has already been given"}
)

// KindOf reports the kind of err, or 0 when err is not a DomainError.
func KindOf(err error) Kind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

// NewValidationError converts a validator (or JSON decoding) error into a
// validation DomainError carrying the per-field issues.
func NewValidationError(err error) *DomainError {
	out := &DomainError{Kind: KindValidation, Code: CodeValidationFailed, Message: ErrValidation.Message}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out.Issues = append(out.Issues, Issue{
				Field:   lowerFirst(fe.Field()),
				Rule:    fe.Tag(),
				Param:   fe.Param(),
				Message: issueMessage(fe),
			})
		}
		return out
	}
	out.Issues = []Issue{{Field: "body", Rule: "decode", Message: err.Error()}}
	return out
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email address"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
