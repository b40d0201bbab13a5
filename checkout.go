package storefront

import (
	"context"

	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/export"
	"github.com/agentstation/storefront/pkg/receipt"
)

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(message string) bool

// Result is how a submission workflow ended.
type Result int

// Workflow results.
const (
	// NotSaved means the backend rejected the submission and the user
	// declined the local fallback. Nothing changed.
	NotSaved Result = iota
	// Saved means the backend accepted the submission.
	Saved
	// Downloaded means the backend failed and a local file was written.
	Downloaded
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case Saved:
		return "saved"
	case Downloaded:
		return "downloaded"
	default:
		return "not_saved"
	}
}

// Prompts and messages shown during the workflows.
const (
	ReceiptFallbackPrompt = "Saving to server failed. Download receipt locally instead?"
	CartFallbackPrompt    = "Saving to server failed. Download cart JSON locally instead?"

	MsgEmptyCart         = "Cart is empty."
	MsgReceiptSaved      = "Receipt saved to server and downloaded."
	MsgReceiptSavedOnly  = "Receipt saved to server."
	MsgReceiptDownloaded = "Receipt downloaded locally."
	MsgReceiptNotSaved   = "Receipt not saved."
	MsgCartSaved         = "Cart saved to server."
	MsgCartDownloaded    = "Cart downloaded locally."
	MsgCartNotSaved      = "Cart not saved."
)

// Outcome reports what a workflow did.
type Outcome struct {
	Result Result
	// Message is a one-line summary for the user.
	Message string
	// Path is the exported file, if one was written.
	Path string
	// Response is the backend's reply text on success.
	Response string
	// SubmitErr is the backend failure that triggered the fallback, if any.
	SubmitErr error
}

// Checkout turns the cart into a receipt and submits it. On success a copy
// is exported and the cart is cleared. On failure confirm is asked whether to
// export the receipt locally instead; accepting clears the cart, declining
// leaves it unchanged. An empty or zero-total cart returns errors.ErrEmptyCart.
func (c *client) Checkout(ctx context.Context, confirm ConfirmFunc) (*Outcome, error) {
	c.workflowMu.Lock()
	defer c.workflowMu.Unlock()

	entries := c.cart.Entries()
	if len(entries) == 0 || c.cart.Total().IsZero() {
		return nil, errors.ErrEmptyCart
	}

	r := receipt.New(entries, c.options.now())

	response, err := c.syncClient.SubmitReceipt(ctx, r)
	if err == nil {
		message := MsgReceiptSaved
		path, exportErr := c.export(r, "receipt")
		if exportErr != nil {
			c.logger.Warn().Err(exportErr).Msg("Receipt saved but local copy failed")
			message = MsgReceiptSavedOnly
		}
		c.cart.Clear(ctx)
		c.logger.Info().Str("total", r.Total.StringFixed(2)).Msg("Checkout complete")
		return &Outcome{Result: Saved, Message: message, Path: path, Response: response}, nil
	}

	c.logger.Warn().Err(err).Msg("Failed to save receipt to server")
	if confirm == nil || !confirm(ReceiptFallbackPrompt) {
		return &Outcome{Result: NotSaved, Message: MsgReceiptNotSaved, SubmitErr: err}, nil
	}

	path, exportErr := c.export(r, "receipt")
	if exportErr != nil {
		return nil, errors.WrapResource("export", "receipt", "", exportErr)
	}
	c.cart.Clear(ctx)
	return &Outcome{Result: Downloaded, Message: MsgReceiptDownloaded, Path: path, SubmitErr: err}, nil
}

// SaveCart submits the cart without checking out. On failure confirm is
// asked whether to export the cart locally. The cart is never cleared.
func (c *client) SaveCart(ctx context.Context, confirm ConfirmFunc) (*Outcome, error) {
	c.workflowMu.Lock()
	defer c.workflowMu.Unlock()

	entries := c.cart.Entries()
	if len(entries) == 0 {
		return nil, errors.ErrEmptyCart
	}

	response, err := c.syncClient.SubmitCart(ctx, entries)
	if err == nil {
		return &Outcome{Result: Saved, Message: MsgCartSaved, Response: response}, nil
	}

	c.logger.Warn().Err(err).Msg("Failed to save cart to server")
	if confirm == nil || !confirm(CartFallbackPrompt) {
		return &Outcome{Result: NotSaved, Message: MsgCartNotSaved, SubmitErr: err}, nil
	}

	path, exportErr := c.export(entries, "cart")
	if exportErr != nil {
		return nil, errors.WrapResource("export", "cart", "", exportErr)
	}
	return &Outcome{Result: Downloaded, Message: MsgCartDownloaded, Path: path, SubmitErr: err}, nil
}

// ExportCart writes the current cart to the download directory.
func (c *client) ExportCart() (string, error) {
	entries := c.cart.Entries()
	if len(entries) == 0 {
		return "", errors.ErrEmptyCart
	}
	return c.export(entries, "cart")
}

func (c *client) export(v any, prefix string) (string, error) {
	return export.WriteAt(v, prefix, c.options.now(),
		export.WithDir(c.options.downloadDir),
		export.WithFormat(c.options.exportFormat),
	)
}
