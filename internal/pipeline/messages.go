package pipeline

import (
	"errors"

	"github.com/jonathan/application-tailor/internal/layout"
	"github.com/jonathan/application-tailor/internal/llm"
	"github.com/jonathan/application-tailor/internal/locale"
	"github.com/jonathan/application-tailor/internal/types"
)

// UserMessage returns the localized message shown to the user for err, or "" when err
// has no user-facing form.
func UserMessage(loc types.Locale, err error) string {
	var (
		inputErr  *types.InputError
		fieldErr  *layout.FieldError
		policyErr *llm.PolicyError
		transErr  *llm.TransportError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &policyErr):
		return locale.Message(loc, locale.MsgPolicyRejected)
	case errors.As(err, &transErr):
		return locale.Message(loc, locale.MsgGenerationFailed, llm.Detail(err))
	case errors.As(err, &fieldErr):
		return locale.Message(loc, locale.MsgRenderFailed, fieldErr.Field)
	case errors.As(err, &inputErr):
		switch inputErr.Field {
		case "profile_id", "profile":
			return locale.Message(loc, locale.MsgNoProfile)
		case "template":
			return locale.Message(loc, locale.MsgNoTemplate)
		case "job_id", "job":
			return locale.Message(loc, locale.MsgNoJob)
		}
	}
	return ""
}
