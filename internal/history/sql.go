package history

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/codr1/chromapick/internal/db"
	dbgen "github.com/codr1/chromapick/internal/db/generated"
	"github.com/codr1/chromapick/internal/models"
)

// SQLStore keeps history in SQLite so it survives restarts.
type SQLStore struct {
	db *db.DB
	// SQLite allows one writer; serializing appends avoids busy errors between
	// the sequence read and the insert.
	writeMu sync.Mutex
	now     func() time.Time
}

func NewSQLStore(database *db.DB) (*SQLStore, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	return &SQLStore{db: database, now: time.Now}, nil
}

func (s *SQLStore) Append(ctx context.Context, record Record) (Record, error) {
	if err := validateSession(record.SessionID); err != nil {
		return Record{}, err
	}
	if record.RecordedAt.IsZero() {
		record.RecordedAt = s.now().UTC()
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var saved Record
	err := s.db.RunInTx(ctx, func(tx *db.DB) error {
		seq, err := tx.Queries.NextSampleSeq(ctx, record.SessionID)
		if err != nil {
			return fmt.Errorf("next sample seq: %w", err)
		}

		c := record.Color
		row, err := tx.Queries.CreateColorSample(ctx, dbgen.CreateColorSampleParams{
			SessionID:  record.SessionID,
			Seq:        seq,
			Red:        int64(c.RGB.R),
			Green:      int64(c.RGB.G),
			Blue:       int64(c.RGB.B),
			Hex:        c.Hex,
			Hue:        int64(c.HSL.H),
			Saturation: int64(c.HSL.S),
			Lightness:  int64(c.HSL.L),
			Luminance:  int64(c.Luminance),
			Name:       c.Name,
			TextColor:  c.TextColor,
			RecordedAt: record.RecordedAt,
		})
		if err != nil {
			return fmt.Errorf("insert color sample: %w", err)
		}
		saved = recordFromDB(row)
		return nil
	})
	if err != nil {
		return Record{}, err
	}
	return saved, nil
}

func (s *SQLStore) List(ctx context.Context, sessionID string) ([]Record, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	rows, err := s.db.Queries.ListSessionColorSamples(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list color samples: %w", err)
	}
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, recordFromDB(row))
	}
	return records, nil
}

func (s *SQLStore) Stats(ctx context.Context) (Stats, error) {
	row, err := s.db.Queries.CountColorSamples(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count color samples: %w", err)
	}
	return Stats{Sessions: int(row.Sessions), Records: int(row.Samples)}, nil
}

func recordFromDB(row dbgen.ColorSample) Record {
	return Record{
		SessionID: row.SessionID,
		Seq:       row.Seq,
		Color: models.DerivedColor{
			RGB:       models.RGB{R: int(row.Red), G: int(row.Green), B: int(row.Blue)},
			Hex:       row.Hex,
			HSL:       models.HSL{H: int(row.Hue), S: int(row.Saturation), L: int(row.Lightness)},
			Luminance: int(row.Luminance),
			Name:      row.Name,
			TextColor: row.TextColor,
		},
		RecordedAt: row.RecordedAt.UTC(),
	}
}
