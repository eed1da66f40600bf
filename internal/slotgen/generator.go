package slotgen

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meishi-app/meishi-backend/internal/db"
	"github.com/meishi-app/meishi-backend/internal/generalslot"
	"github.com/meishi-app/meishi-backend/internal/pkg/daytime"
	"github.com/meishi-app/meishi-backend/internal/timeslot"
	"go.uber.org/zap"
)

// Generator applies rule changes to the materialized slots and advances the
// rolling horizon once a day. It implements generalslot.Reconciler.
type Generator struct {
	pool        *pgxpool.Pool
	slots       timeslot.Repository
	rules       generalslot.Repository
	horizonDays int
	now         func() time.Time
	logger      *zap.Logger
}

func NewGenerator(
	pool *pgxpool.Pool,
	slots timeslot.Repository,
	rules generalslot.Repository,
	horizonDays int,
	now func() time.Time,
	logger *zap.Logger,
) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{
		pool:        pool,
		slots:       slots,
		rules:       rules,
		horizonDays: horizonDays,
		now:         now,
		logger:      logger,
	}
}

func (g *Generator) today() time.Time {
	return daytime.DateOf(g.now())
}

func newSlotFromRule(rule *generalslot.GeneralTimeSlot, key timeslot.Key) *timeslot.TimeSlot {
	return &timeslot.TimeSlot{
		BookingSystemID: rule.BookingSystemID,
		GeneralSlotID:   &rule.ID,
		Date:            key.Date,
		Time:            key.Time,
		IsOpen:          true,
		MaxPeople:       rule.MaxPeople,
		MaxTables:       rule.MaxTables,
		MinPerBooking:   rule.MinPerBooking,
		MaxPerBooking:   rule.MaxPerBooking,
	}
}

// reconcile runs a full teardown-and-regenerate pass for one rule inside a
// single transaction. planned is nil when the rule is going away.
func (g *Generator) reconcile(ctx context.Context, rule *generalslot.GeneralTimeSlot, planned []timeslot.Key) error {
	today := g.today()

	return db.WithTx(ctx, g.pool, func(tx pgx.Tx) error {
		attached, err := g.slots.ListStatesByRule(ctx, tx, rule.ID)
		if err != nil {
			return err
		}

		existing, err := g.slots.MapSystemHorizon(ctx, tx, rule.BookingSystemID,
			today, today.AddDate(0, 0, g.horizonDays))
		if err != nil {
			return err
		}

		m := Reconcile(attached, existing, planned)

		if err := g.slots.DeleteByIDs(ctx, tx, m.DeleteIDs); err != nil {
			return err
		}
		if err := g.slots.CloseByIDs(ctx, tx, m.CloseIDs); err != nil {
			return err
		}
		if err := g.slots.AttachToRule(ctx, tx, rule.ID, m.AttachIDs); err != nil {
			return err
		}

		create := make([]*timeslot.TimeSlot, len(m.Create))
		for i, key := range m.Create {
			create[i] = newSlotFromRule(rule, key)
		}
		return g.slots.BulkInsert(ctx, tx, create)
	})
}

func (g *Generator) OnRuleCreated(ctx context.Context, rule *generalslot.GeneralTimeSlot) error {
	return g.reconcile(ctx, rule, Plan(rule, g.today(), g.horizonDays))
}

func (g *Generator) OnRuleUpdated(ctx context.Context, rule *generalslot.GeneralTimeSlot) error {
	return g.reconcile(ctx, rule, Plan(rule, g.today(), g.horizonDays))
}

// OnRuleDeleted tears the rule's slots down without regenerating. Booked
// slots stay behind closed; the FK nulls their rule pointer afterwards.
func (g *Generator) OnRuleDeleted(ctx context.Context, rule *generalslot.GeneralTimeSlot) error {
	return g.reconcile(ctx, rule, nil)
}

// AdvanceHorizon creates the slots for the day that just entered the rolling
// window (today + horizonDays). Each rule runs in its own transaction so one
// failure does not block the rest; existing slots at a time are left alone,
// which makes the pass safe to rerun.
func (g *Generator) AdvanceHorizon(ctx context.Context) error {
	target := g.today().AddDate(0, 0, g.horizonDays)

	rules, err := g.rules.ListByWeekday(ctx, daytime.WeekdayOf(target))
	if err != nil {
		return fmt.Errorf("list rules for horizon advance: %w", err)
	}
	if len(rules) == 0 {
		return nil
	}

	taken, err := g.slots.ListTimesByDate(ctx, target)
	if err != nil {
		return fmt.Errorf("list existing slot times: %w", err)
	}

	var failed int
	for _, rule := range rules {
		var create []*timeslot.TimeSlot
		for _, key := range TimesOf(rule, target) {
			if taken[rule.BookingSystemID][key.Time] {
				continue
			}
			create = append(create, newSlotFromRule(rule, key))
		}
		if len(create) == 0 {
			continue
		}

		err := db.WithTx(ctx, g.pool, func(tx pgx.Tx) error {
			return g.slots.BulkInsert(ctx, tx, create)
		})
		if err != nil {
			failed++
			g.logger.Error("horizon advance failed for rule",
				zap.Int64("general_slot_id", rule.ID),
				zap.Int64("booking_system_id", rule.BookingSystemID),
				zap.String("date", daytime.FormatDate(target)),
				zap.Error(err))
		}
	}

	if failed > 0 {
		return fmt.Errorf("horizon advance: %d of %d rules failed", failed, len(rules))
	}
	return nil
}
