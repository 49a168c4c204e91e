package mailchimp

import (
	"context"
	"errors"
	"fmt"

	"audience-sync/core/reconcile"
	"audience-sync/core/transport"

	"go.uber.org/zap"
)

// ErrNoTarget is returned for updates and deletes without a target id.
var ErrNoTarget = errors.New("item has no target id")

// MemberWriter writes list members.
type MemberWriter struct {
	client   transport.Client
	endpoint Endpoint
	listID   string
	compiler *Compiler
	logger   *zap.Logger
}

var _ reconcile.Writer = (*MemberWriter)(nil)

// NewMemberWriter creates a writer for the members of listID.
func NewMemberWriter(client transport.Client, endpoint Endpoint, listID string, logger *zap.Logger) *MemberWriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemberWriter{
		client:   client,
		endpoint: endpoint,
		listID:   listID,
		compiler: NewCompiler(memberFields),
		logger:   logger,
	}
}

// Add creates a member and returns the id assigned by the API.
func (w *MemberWriter) Add(ctx context.Context, item *reconcile.Item) (string, error) {
	delta, err := w.compiler.CompileAdd(item)
	if err != nil {
		return "", err
	}

	resp, err := w.client.PostJSON(ctx, w.endpoint.MemberCollection(w.listID), delta.Payload)
	if err != nil {
		return "", err
	}

	id, err := ExtractID(resp)
	if err != nil {
		return "", fmt.Errorf("add member: %w", err)
	}
	return id, nil
}

// Update sends changed fields, then tag changes. Unchanged items make no
// calls.
func (w *MemberWriter) Update(ctx context.Context, item *reconcile.Item) error {
	if item.TargetID == "" {
		return ErrNoTarget
	}

	delta, err := w.compiler.CompileUpdate(item)
	if err != nil {
		return err
	}

	if len(delta.Payload) > 0 {
		if _, err := w.client.PutJSON(ctx, w.endpoint.Member(w.listID, item.TargetID), delta.Payload); err != nil {
			return err
		}
	}

	if len(delta.Tags) > 0 {
		body := map[string]any{"tags": delta.Tags}
		if _, err := w.client.PostJSON(ctx, w.endpoint.MemberTags(w.listID, item.TargetID), body); err != nil {
			return err
		}
	}

	if delta.Empty() {
		w.logger.Debug("No changes to send", zap.String("id", item.TargetID))
	}
	return nil
}

// Delete removes a member.
func (w *MemberWriter) Delete(ctx context.Context, item *reconcile.Item) error {
	if item.TargetID == "" {
		return ErrNoTarget
	}
	_, err := w.client.DeleteJSON(ctx, w.endpoint.Member(w.listID, item.TargetID))
	return err
}
