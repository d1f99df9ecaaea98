package events_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/frahmantamala/hospital-careers/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

var _ = Describe("EventBus", func() {
	var (
		bus *events.EventBus
		out *bytes.Buffer
	)

	BeforeEach(func() {
		out = &bytes.Buffer{}
		bus = events.NewEventBus(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})))
	})

	It("runs handlers in subscription order", func() {
		var order []int
		bus.Subscribe(events.EventTypeStatusChanged, func(context.Context, events.Event) error {
			order = append(order, 1)
			return nil
		})
		bus.Subscribe(events.EventTypeStatusChanged, func(context.Context, events.Event) error {
			order = append(order, 2)
			return nil
		})

		ev := events.NewStatusChangedEvent(events.EntityApplication, 7, "PENDING", "APPROVED", 1)
		Expect(bus.PublishSync(context.Background(), ev)).To(Succeed())
		Expect(order).To(Equal([]int{1, 2}))
	})

	It("stops at the first failing handler", func() {
		called := false
		bus.Subscribe(events.EventTypeStatusChanged, func(context.Context, events.Event) error {
			return errors.New("boom")
		})
		bus.Subscribe(events.EventTypeStatusChanged, func(context.Context, events.Event) error {
			called = true
			return nil
		})

		err := bus.PublishSync(context.Background(), events.NewStatusChangedEvent(events.EntityResume, 1, "PENDING", "REVIEWING", 0))
		Expect(err).To(MatchError(ContainSubstring("boom")))
		Expect(called).To(BeFalse())
	})

	It("writes an audit line for status changes", func() {
		events.SubscribeAudit(bus, slog.New(slog.NewTextHandler(out, nil)))
		ev := events.NewStatusChangedEvent(events.EntityContractRenewal, 3, "PENDING", "REJECTED", 9)
		Expect(bus.PublishSync(context.Background(), ev)).To(Succeed())
		Expect(out.String()).To(ContainSubstring("audit: status changed"))
		Expect(out.String()).To(ContainSubstring("entity_type=contract_renewal"))
		Expect(out.String()).To(ContainSubstring("to=REJECTED"))
	})

	It("is a no-op without handlers", func() {
		Expect(bus.PublishSync(context.Background(), events.NewStatusChangedEvent(events.EntityApplication, 1, "A", "B", 0))).To(Succeed())
	})
})
