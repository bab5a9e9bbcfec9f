package trainedstep

import (
	"database/sql"
	"time"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/steps"
	"github.com/lib/pq"
)

const trainedStepTable = "trained_steps"

type TrainedStepRow struct {
	ID        string                          `db:"id"`
	Kind      string                          `db:"kind"`
	Role      sql.NullString                  `db:"role"`
	Trained   bool                            `db:"trained"`
	Skip      bool                            `db:"skip"`
	Columns   pq.StringArray                  `db:"columns"`
	Document  database.JSONB[steps.Document] `db:"document"`
	CreatedTS sql.NullTime                    `db:"created_at"`
	UpdatedTS sql.NullTime                    `db:"updated_at"`
}

var trainedSteps = database.NewTable(trainedStepTable, new(TrainedStepRow))

// upsertColumns are overwritten when a step is trained again under the same id.
var upsertColumns = []string{"kind", "role", "trained", "skip", "columns", "document"}

func FromDocument(doc steps.Document, now time.Time) *TrainedStepRow {
	columns := doc.Columns
	if columns == nil {
		columns = []string{}
	}

	return &TrainedStepRow{
		ID:        doc.ID,
		Kind:      string(doc.Kind),
		Role:      sql.NullString{String: string(doc.Role), Valid: doc.Role != ""},
		Trained:   doc.Trained,
		Skip:      doc.Skip,
		Columns:   pq.StringArray(columns),
		Document:  database.JSONB[steps.Document]{Data: doc},
		CreatedTS: sql.NullTime{Time: now, Valid: !now.IsZero()},
		UpdatedTS: sql.NullTime{Time: now, Valid: !now.IsZero()},
	}
}

// ToDocument returns the stored document. The row columns are indexes over it;
// the document is the source of truth.
func ToDocument(row *TrainedStepRow) steps.Document {
	doc := row.Document.Data
	if doc.ID == "" {
		doc.ID = row.ID
	}
	return doc
}
