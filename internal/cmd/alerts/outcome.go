package alerts

import (
	"io"

	"github.com/agentstation/storefront"
	"github.com/agentstation/storefront/internal/cmd/output"
	"github.com/agentstation/storefront/pkg/errors"
)

// ForOutcome converts a workflow outcome into an alert: success when the
// backend accepted it, a warning when a local file was written instead, and
// an error when nothing was saved.
func ForOutcome(o *storefront.Outcome) *Alert {
	var a *Alert
	switch o.Result {
	case storefront.Saved:
		a = NewSuccess(o.Message)
	case storefront.Downloaded:
		a = NewWarning(o.Message)
	default:
		a = NewError(o.Message)
	}

	if o.SubmitErr != nil {
		a.WithDetails("server: " + errors.UserMessage(o.SubmitErr))
	}
	if o.Path != "" {
		a.WithDetails("file: " + o.Path)
	}
	return a
}

// WriteOutcome prints the result of a workflow. An empty cart is reported as
// information rather than returned as an error; other errors are returned.
func WriteOutcome(w io.Writer, format output.Format, outcome *storefront.Outcome, err error) error {
	if errors.IsEmptyCart(err) {
		return NewFormatWriter(w, format).WriteAlert(NewInfo(storefront.MsgEmptyCart))
	}
	if err != nil {
		return err
	}
	return NewFormatWriter(w, format).WriteAlert(ForOutcome(outcome))
}
