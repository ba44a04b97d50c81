package claim

import (
	"context"
	"unicode"

	"github.com/0x1723/mfbldr/internal/assets"
	mferr "github.com/0x1723/mfbldr/pkg/errors"
)

// Controller drives the claim flow against a session: resolution,
// validation, submission, and confirmation.
type Controller struct {
	session *Session
	source  AssetSource
	domains DomainReader
	writer  ClaimWriter
	watcher ConfirmationWatcher
	parent  string
	log     LogWriter
}

// ControllerOptions wires the controller's collaborators.
type ControllerOptions struct {
	Session *Session
	Source  AssetSource
	Domains DomainReader
	Writer  ClaimWriter
	Watcher ConfirmationWatcher
	Parent  string
	Log     LogWriter
}

// NewController creates a controller. A nil session gets a fresh one
// and a nil log writer is replaced with a no-op.
func NewController(opts ControllerOptions) *Controller {
	session := opts.Session
	if session == nil {
		session = NewSession()
	}
	log := opts.Log
	if log == nil {
		log = nopLog{}
	}
	return &Controller{
		session: session,
		source:  opts.Source,
		domains: opts.Domains,
		writer:  opts.Writer,
		watcher: opts.Watcher,
		parent:  opts.Parent,
		log:     log,
	}
}

// nopLog discards all log output.
type nopLog struct{}

func (nopLog) Debug(string, ...any) {}
func (nopLog) Error(string, ...any) {}

// Session exposes the controller's session.
func (c *Controller) Session() *Session {
	return c.session
}

// ValidateLabel checks a label locally before anything is submitted:
// it must be non-empty and contain no spaces or capital letters.
func ValidateLabel(label string) error {
	if label == "" {
		return mferr.ErrLabelRequired
	}
	for _, r := range label {
		if unicode.IsSpace(r) || unicode.IsUpper(r) {
			return mferr.ErrLabelInvalid
		}
	}
	return nil
}

// Resolve queries the asset source for the session address's tokens and
// merges the registry's claimed-domain state into them. On a resolution
// failure the session keeps its prior state. A failed domain lookup
// still installs the resolved tokens, just without claim markers.
func (c *Controller) Resolve(ctx context.Context) ([]assets.Asset, error) {
	address := c.session.Address()
	generation := c.session.Begin()

	c.log.Debug("resolving assets for %s", address)

	owned, err := c.source.Owned(ctx, address)
	if err != nil {
		c.log.Error("asset resolution failed: %v", err)
		return nil, err
	}

	merged, lookupErr := c.mergeDomains(ctx, owned)

	if !c.session.ApplyResolution(generation, merged) {
		c.log.Debug("dropping stale resolution for %s", address)
		return c.session.Assets(), nil
	}

	if lookupErr != nil {
		c.log.Error("claimed-domain lookup failed: %v", lookupErr)
		return c.session.Assets(), mferr.Wrap(lookupErr, "looking up claimed domains")
	}

	return c.session.Assets(), nil
}

func (c *Controller) mergeDomains(ctx context.Context, owned []assets.Asset) ([]assets.Asset, error) {
	if len(owned) == 0 {
		return owned, nil
	}

	ids, err := assets.TokenIDs(owned)
	if err != nil {
		return owned, err
	}

	domains, err := c.domains.TokensDomains(ctx, ids)
	if err != nil {
		return owned, err
	}

	return assets.MergeDomains(owned, domains), nil
}

// Submit validates and broadcasts a claim for the label with the
// session's selected token. Checks run in a fixed order: lifecycle
// first, then label shape, then token availability and selection. A
// failure before or during broadcast leaves the session without a
// record so the claim may be retried.
func (c *Controller) Submit(ctx context.Context, label string) (*TransactionRecord, error) {
	if record := c.session.Record(); record != nil {
		switch record.Status {
		case StatusPending:
			return nil, mferr.WithDetails(mferr.ErrClaimInProgress, map[string]string{
				"tx": record.Hash,
			})
		case StatusConfirmed:
			return nil, mferr.ErrSessionComplete
		case StatusReverted, StatusIdle:
			c.session.clearRecord()
		}
	}

	if err := ValidateLabel(label); err != nil {
		return nil, err
	}

	resolved := c.session.Assets()
	if len(resolved) == 0 {
		return nil, mferr.ErrNoQualifyingToken
	}

	selected, ok := c.session.Selected()
	if !ok {
		return nil, mferr.ErrSelectionRequired
	}

	tokenID, err := selected.TokenIDBig()
	if err != nil {
		return nil, err
	}

	c.log.Debug("submitting claim %q with token %s", label, selected.TokenID)

	hash, err := c.writer.Claim(ctx, label, tokenID)
	if err != nil {
		classified := Classify(err.Error(), label, c.parent, len(resolved) > 1)
		c.log.Error("claim failed: %v (raw: %v)", classified, err)
		return nil, classified
	}

	record := &TransactionRecord{
		Hash:    hash,
		Label:   label,
		TokenID: selected.TokenID,
		Status:  StatusPending,
	}
	c.session.setRecord(record)

	c.log.Debug("claim broadcast: %s", hash)

	r := *record
	return &r, nil
}

// Await blocks until the pending claim is mined. A successful claim
// moves the session to its terminal confirmed state and fires the
// success notification exactly once; a mined failure marks the record
// reverted so a new claim may be submitted. Watcher errors leave the
// record pending.
func (c *Controller) Await(ctx context.Context, notifier Notifier) error {
	record := c.session.Record()
	if record == nil || record.Status != StatusPending {
		return mferr.WithDetails(mferr.ErrInvalidInput, map[string]string{
			"reason": "no pending claim to await",
		})
	}

	succeeded, err := c.watcher.Await(ctx, record.Hash)
	if err != nil {
		c.log.Error("confirmation wait failed: %v", err)
		return mferr.Wrap(err, "waiting for confirmation")
	}

	if !succeeded {
		c.session.setStatus(StatusReverted)
		c.log.Error("claim reverted: %s", record.Hash)
		return mferr.WithDetails(mferr.ErrClaimReverted, map[string]string{
			"tx": record.Hash,
		})
	}

	c.session.setStatus(StatusConfirmed)
	c.log.Debug("claim confirmed: %s", record.Hash)

	if notifier != nil && c.session.markNotified() {
		notifier.ClaimConfirmed(record.Label + "." + c.parent)
	}

	return nil
}
