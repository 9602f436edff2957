package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/macroprep/macroprep-cli/internal/model"
	"github.com/macroprep/macroprep-cli/internal/store"
)

const defaultMealName = "Meal Batch"

type CommitInput struct {
	Name          string
	MassG         float64
	Calories      float64
	ProteinG      float64
	CarbsG        float64
	FatG          float64
	SourceBatchID *int64
	Date          string
	// Limit is the condition reported by Distribute for this portion, if any.
	Limit *Limit
}

// CommitConsumption writes a log row and depletes its source batch in one
// transaction.
func CommitConsumption(st *store.Store, in CommitInput) (model.ConsumptionLog, error) {
	if in.Limit != nil {
		return model.ConsumptionLog{}, fmt.Errorf("%w: portion exceeds %s ceiling of %.0f g", ErrInsufficientInventory, in.Limit.Axis, in.Limit.CeilingG)
	}
	entry, err := newLogRecord(in.Name, in.MassG, in.Calories, in.ProteinG, in.CarbsG, in.FatG, in.Date)
	if err != nil {
		return model.ConsumptionLog{}, err
	}
	entry.SourceBatchID = in.SourceBatchID

	cols := []store.Collection{store.Logs}
	if in.SourceBatchID != nil {
		cols = append(cols, store.Fridge)
	}
	err = st.Update(cols, func(tx *sql.Tx) error {
		if in.SourceBatchID != nil {
			if err := depleteBatch(tx, st.Logger(), *in.SourceBatchID, entry.MassConsumedG); err != nil {
				return err
			}
		}
		id, err := insertLog(tx, entry)
		if err != nil {
			return err
		}
		entry.ID = id
		return nil
	})
	if err != nil {
		return model.ConsumptionLog{}, err
	}
	return entry, nil
}

// EatFromBatch portions a fridge batch and logs the portion against it.
func EatFromBatch(st *store.Store, batchID int64, mode Mode, target float64, date string) (model.ConsumptionLog, Portion, error) {
	b, err := GetBatch(st.DB(), batchID)
	if err != nil {
		return model.ConsumptionLog{}, Portion{}, err
	}
	portion := Distribute(BatchSource(b), mode, target)
	if err := portion.Committable(); err != nil {
		return model.ConsumptionLog{}, portion, err
	}
	// Rounding may push an in-limit portion a fraction past what is left;
	// the log then takes the rest and its nutrients follow that mass.
	mass := float64(portion.MassG)
	if exceedsMass(mass, b.CurrentMassG) {
		mass = b.CurrentMassG
		rest := Distribute(BatchSource(b), ModeScale, mass)
		portion.Calories, portion.ProteinG, portion.CarbsG, portion.FatG = rest.Calories, rest.ProteinG, rest.CarbsG, rest.FatG
	}
	id := b.ID
	entry, err := CommitConsumption(st, CommitInput{
		Name:          b.Name,
		MassG:         mass,
		Calories:      float64(portion.Calories),
		ProteinG:      float64(portion.ProteinG),
		CarbsG:        float64(portion.CarbsG),
		FatG:          float64(portion.FatG),
		SourceBatchID: &id,
		Date:          date,
	})
	return entry, portion, err
}

// PromoteSession turns the pot into a fridge batch weighing finishedMassG.
// A non-positive finished mass falls back to the raw pot mass.
func PromoteSession(st *store.Store, session *Session, finishedMassG float64, name string) (model.FridgeBatch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.FridgeBatch{}, fmt.Errorf("%w: batch name is required", ErrInvalidInput)
	}
	if session == nil || session.Len() == 0 {
		return model.FridgeBatch{}, fmt.Errorf("%w: pot is empty", ErrInvalidInput)
	}
	totals := Aggregate(session.Entries())
	if !isUsable(finishedMassG) {
		finishedMassG = totals.MassG
	}
	if !isUsable(finishedMassG) {
		return model.FridgeBatch{}, fmt.Errorf("%w: finished mass must be > 0", ErrInvalidInput)
	}

	b := model.FridgeBatch{
		Name:         name,
		Calories:     totals.Calories / finishedMassG * 100,
		ProteinG:     totals.ProteinG / finishedMassG * 100,
		CarbsG:       totals.CarbsG / finishedMassG * 100,
		FatG:         totals.FatG / finishedMassG * 100,
		Measure:      model.MeasureMass,
		TotalMassG:   finishedMassG,
		CurrentMassG: finishedMassG,
		CreatedAt:    time.Now().UTC(),
	}
	err := st.Update([]store.Collection{store.Fridge}, func(tx *sql.Tx) error {
		id, err := insertBatch(tx, b)
		if err != nil {
			return err
		}
		b.ID = id
		return nil
	})
	if err != nil {
		return model.FridgeBatch{}, err
	}
	st.Logger().WithFields(logrus.Fields{"batch_id": b.ID, "mass_g": finishedMassG}).Info("pot promoted to fridge")
	session.Clear()
	return b, nil
}

type LogSessionInput struct {
	Session *Session
	// FinishedMassG is the cooked weight; non-positive means the raw pot mass.
	FinishedMassG float64
	Mode          Mode
	Target        float64
	Name          string
	Date          string
}

// LogSession eats a portion of the pot directly. Every fridge-backed entry
// is deducted from its batch by its own quantity, and the whole write is
// refused when an entry asks for more than its batch holds. The log links
// only the first of those batches.
func LogSession(st *store.Store, in LogSessionInput) (model.ConsumptionLog, Portion, error) {
	if in.Session == nil || in.Session.Len() == 0 {
		return model.ConsumptionLog{}, Portion{}, fmt.Errorf("%w: pot is empty", ErrInvalidInput)
	}
	entries := in.Session.Entries()
	totals := Aggregate(entries)
	finished := in.FinishedMassG
	if !isUsable(finished) {
		finished = totals.MassG
	}
	portion := Distribute(CookedSource(totals, finished), in.Mode, in.Target)
	if err := portion.Committable(); err != nil {
		return model.ConsumptionLog{}, portion, err
	}

	name := strings.TrimSpace(in.Name)
	if len(entries) == 1 {
		name = entries[0].Name
	}
	if name == "" {
		name = defaultMealName
	}
	entry, err := newLogRecord(name, float64(portion.MassG), float64(portion.Calories), float64(portion.ProteinG), float64(portion.CarbsG), float64(portion.FatG), in.Date)
	if err != nil {
		return model.ConsumptionLog{}, portion, err
	}
	entry.SourceBatchID = in.Session.FirstBatchID()
	draws := in.Session.BatchDraws()

	err = st.Update([]store.Collection{store.Logs, store.Fridge}, func(tx *sql.Tx) error {
		id, err := insertLog(tx, entry)
		if err != nil {
			return err
		}
		entry.ID = id
		for _, d := range draws {
			if err := depleteBatch(tx, st.Logger(), d.BatchID, d.MassG); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return model.ConsumptionLog{}, portion, err
	}
	in.Session.Clear()
	return entry, portion, nil
}

// DeleteLog removes a log and refunds its mass to the linked batch,
// recreating the batch under its old id when it has been used up.
func DeleteLog(st *store.Store, id int64) (model.ConsumptionLog, error) {
	var entry model.ConsumptionLog
	err := st.Update([]store.Collection{store.Logs, store.Fridge}, func(tx *sql.Tx) error {
		var err error
		entry, err = getLog(tx, id)
		if err != nil {
			return err
		}
		if entry.SourceBatchID != nil {
			if err := refundBatch(tx, st.Logger(), entry); err != nil {
				return err
			}
		}
		if _, err := tx.Exec(`DELETE FROM logs WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete log %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return model.ConsumptionLog{}, err
	}
	return entry, nil
}

func ListLogs(db queryer, date string) ([]model.ConsumptionLog, error) {
	query := `SELECT ` + logColumns + ` FROM logs`
	args := []any{}
	if strings.TrimSpace(date) != "" {
		query += ` WHERE log_date = ?`
		args = append(args, strings.TrimSpace(date))
	}
	query += ` ORDER BY logged_at ASC, id ASC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	items := make([]model.ConsumptionLog, 0)
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate logs: %w", err)
	}
	return items, nil
}

const logColumns = `id, log_date, name, mass_consumed_g, calories, protein_g, carbs_g, fat_g, logged_at, source_batch_id`

func scanLog(row rowScanner) (model.ConsumptionLog, error) {
	var l model.ConsumptionLog
	var logged string
	var source sql.NullInt64
	if err := row.Scan(&l.ID, &l.Date, &l.Name, &l.MassConsumedG, &l.Calories, &l.ProteinG, &l.CarbsG, &l.FatG, &logged, &source); err != nil {
		return model.ConsumptionLog{}, err
	}
	l.LoggedAt = parseTime(logged)
	if source.Valid {
		v := source.Int64
		l.SourceBatchID = &v
	}
	return l, nil
}

func getLog(db queryer, id int64) (model.ConsumptionLog, error) {
	l, err := scanLog(db.QueryRow(`SELECT `+logColumns+` FROM logs WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ConsumptionLog{}, fmt.Errorf("%w: log %d", ErrNotFound, id)
		}
		return model.ConsumptionLog{}, fmt.Errorf("get log %d: %w", id, err)
	}
	return l, nil
}

func newLogRecord(name string, mass, calories, protein, carbs, fat float64, date string) (model.ConsumptionLog, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultMealName
	}
	if !isUsable(mass) {
		return model.ConsumptionLog{}, fmt.Errorf("%w: consumed mass must be > 0", ErrInvalidInput)
	}
	for field, v := range map[string]float64{"calories": calories, "protein": protein, "carbs": carbs, "fat": fat} {
		if err := validateNonNegativeFloat(field, v); err != nil {
			return model.ConsumptionLog{}, err
		}
	}
	now := time.Now()
	date = strings.TrimSpace(date)
	if date == "" {
		date = dateKey(now)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return model.ConsumptionLog{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return model.ConsumptionLog{
		Date:          date,
		Name:          name,
		MassConsumedG: mass,
		Calories:      calories,
		ProteinG:      protein,
		CarbsG:        carbs,
		FatG:          fat,
		LoggedAt:      now.UTC(),
	}, nil
}

func insertLog(tx queryer, l model.ConsumptionLog) (int64, error) {
	var source any
	if l.SourceBatchID != nil {
		source = *l.SourceBatchID
	}
	var (
		res sql.Result
		err error
	)
	if l.ID > 0 {
		res, err = tx.Exec(`
INSERT INTO logs(id, log_date, name, mass_consumed_g, calories, protein_g, carbs_g, fat_g, logged_at, source_batch_id)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			l.ID, l.Date, l.Name, l.MassConsumedG, l.Calories, l.ProteinG, l.CarbsG, l.FatG, formatTime(l.LoggedAt), source)
	} else {
		res, err = tx.Exec(`
INSERT INTO logs(log_date, name, mass_consumed_g, calories, protein_g, carbs_g, fat_g, logged_at, source_batch_id)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			l.Date, l.Name, l.MassConsumedG, l.Calories, l.ProteinG, l.CarbsG, l.FatG, formatTime(l.LoggedAt), source)
	}
	if err != nil {
		return 0, fmt.Errorf("insert log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve log id: %w", err)
	}
	return id, nil
}

// depleteBatch takes massG off a batch, deleting it when nothing is left.
// Taking more than is left is refused.
func depleteBatch(tx queryer, log *logrus.Logger, batchID int64, massG float64) error {
	b, err := GetBatch(tx, batchID)
	if err != nil {
		return err
	}
	if exceedsMass(massG, b.CurrentMassG) {
		return fmt.Errorf("%w: batch %d has %g g left, %g g requested", ErrInsufficientInventory, batchID, b.CurrentMassG, massG)
	}
	remaining := subMass(b.CurrentMassG, massG)
	fields := logrus.Fields{"batch_id": batchID, "mass_g": massG}
	if remaining <= 0 {
		if _, err := tx.Exec(`DELETE FROM fridge WHERE id = ?`, batchID); err != nil {
			return fmt.Errorf("delete emptied batch %d: %w", batchID, err)
		}
		log.WithFields(fields).Info("batch used up and removed")
		return nil
	}
	if _, err := tx.Exec(`UPDATE fridge SET current_mass_g = ? WHERE id = ?`, remaining, batchID); err != nil {
		return fmt.Errorf("deplete batch %d: %w", batchID, err)
	}
	log.WithFields(fields).Info("batch depleted")
	return nil
}

func refundBatch(tx queryer, log *logrus.Logger, l model.ConsumptionLog) error {
	batchID := *l.SourceBatchID
	fields := logrus.Fields{"batch_id": batchID, "mass_g": l.MassConsumedG}

	b, err := GetBatch(tx, batchID)
	switch {
	case err == nil:
		current := addMass(b.CurrentMassG, l.MassConsumedG)
		total := b.TotalMassG
		if exceedsMass(current, total) {
			log.WithFields(fields).Warn("refund exceeds batch total, raising total")
			total = current
		}
		if _, err := tx.Exec(`UPDATE fridge SET current_mass_g = ?, total_mass_g = ? WHERE id = ?`, current, total, batchID); err != nil {
			return fmt.Errorf("refund batch %d: %w", batchID, err)
		}
		log.WithFields(fields).Info("batch refunded")
		return nil
	case errors.Is(err, ErrNotFound):
		m := l.MassConsumedG
		_, err := insertBatch(tx, model.FridgeBatch{
			ID:           batchID,
			Name:         l.Name,
			Calories:     l.Calories / m * 100,
			ProteinG:     l.ProteinG / m * 100,
			CarbsG:       l.CarbsG / m * 100,
			FatG:         l.FatG / m * 100,
			Measure:      model.MeasureMass,
			TotalMassG:   m,
			CurrentMassG: m,
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("recreate batch %d: %w", batchID, err)
		}
		log.WithFields(fields).Info("batch recreated from refund")
		return nil
	default:
		return err
	}
}

// consumedOn sums the day's logs.
func consumedOn(db queryer, date string) (Totals, error) {
	var t Totals
	err := db.QueryRow(`
SELECT IFNULL(SUM(mass_consumed_g),0), IFNULL(SUM(calories),0), IFNULL(SUM(protein_g),0), IFNULL(SUM(carbs_g),0), IFNULL(SUM(fat_g),0)
FROM logs WHERE log_date = ?`, date).Scan(&t.MassG, &t.Calories, &t.ProteinG, &t.CarbsG, &t.FatG)
	if err != nil {
		return Totals{}, fmt.Errorf("sum logs for %s: %w", date, err)
	}
	return t, nil
}
