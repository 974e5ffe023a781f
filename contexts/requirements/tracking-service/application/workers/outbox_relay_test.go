package workers

import (
	"context"
	"errors"
	"testing"

	"requisite/contexts/requirements/tracking-service/adapters/memory"
	"requisite/contexts/requirements/tracking-service/ports"
)

type capturingPublisher struct {
	published []ports.EntityChangedEvent
	fail      bool
}

func (p *capturingPublisher) PublishEntityChanged(_ context.Context, event ports.EntityChangedEvent) error {
	if p.fail {
		return errors.New("bus unavailable")
	}
	p.published = append(p.published, event)
	return nil
}

func TestOutboxRelayPublishesAndAcknowledges(t *testing.T) {
	store := memory.NewStore()
	org := store.SeedOrganization("Acme")
	if _, err := store.UpdateOrganization(context.Background(), org.ID, ports.OrganizationInput{Name: "Acme v2"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	publisher := &capturingPublisher{}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, BatchSize: 10}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}

	if len(publisher.published) != 1 {
		t.Fatalf("expected one published event, got %d", len(publisher.published))
	}
	if publisher.published[0].EventType != "organization.updated" {
		t.Fatalf("unexpected event type %q", publisher.published[0].EventType)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected outbox drained, got %d pending rows", len(pending))
	}
}

func TestOutboxRelayKeepsRowsOnPublishFailure(t *testing.T) {
	store := memory.NewStore()
	org := store.SeedOrganization("Acme")
	if _, err := store.UpdateOrganization(context.Background(), org.ID, ports.OrganizationInput{Name: "Acme v2"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	relay := OutboxRelay{Outbox: store, Publisher: &capturingPublisher{fail: true}, BatchSize: 10}
	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected publish failure to surface")
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected row to stay pending after failure, got %d", len(pending))
	}
}

func TestOutboxRelayIdlesOnEmptyOutbox(t *testing.T) {
	relay := OutboxRelay{Outbox: memory.NewStore(), Publisher: &capturingPublisher{}}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("expected no-op on empty outbox, got %v", err)
	}
}
