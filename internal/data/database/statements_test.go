package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUpsert(t *testing.T) {
	tests := []struct {
		name    string
		spec    UpsertSpec
		want    string
		wantErr bool
	}{
		{
			name: "explicit update list",
			spec: UpsertSpec{
				Table:   "queue_items",
				Columns: []string{"id", "status", "key"},
				Update:  []string{"status"},
			},
			want: `INSERT INTO "queue_items" ("id", "status", "key") VALUES ($1, $2, $3) ` +
				`ON CONFLICT ("id") DO UPDATE SET "status" = EXCLUDED."status"`,
		},
		{
			name: "default updates every non-key column",
			spec: UpsertSpec{
				Table:   "jobs",
				Columns: []string{"id", "state", "type"},
			},
			want: `INSERT INTO "jobs" ("id", "state", "type") VALUES ($1, $2, $3) ` +
				`ON CONFLICT ("id") DO UPDATE SET "state" = EXCLUDED."state", "type" = EXCLUDED."type"`,
		},
		{
			name: "key only does nothing",
			spec: UpsertSpec{Table: "t", Columns: []string{"id"}},
			want: `INSERT INTO "t" ("id") VALUES ($1) ON CONFLICT ("id") DO NOTHING`,
		},
		{
			name: "returning clause",
			spec: UpsertSpec{Table: "t", Columns: []string{"id", "a"}, Returning: "(xmax = 0)"},
			want: `INSERT INTO "t" ("id", "a") VALUES ($1, $2) ` +
				`ON CONFLICT ("id") DO UPDATE SET "a" = EXCLUDED."a" RETURNING (xmax = 0)`,
		},
		{
			name:    "missing table",
			spec:    UpsertSpec{Columns: []string{"id"}},
			wantErr: true,
		},
		{
			name:    "missing columns",
			spec:    UpsertSpec{Table: "t"},
			wantErr: true,
		},
		{
			name:    "conflict column not inserted",
			spec:    UpsertSpec{Table: "t", Columns: []string{"a"}},
			wantErr: true,
		},
		{
			name:    "update column not inserted",
			spec:    UpsertSpec{Table: "t", Columns: []string{"id"}, Update: []string{"b"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildUpsert(tt.spec)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildUpsert_SanitizesIdentifiers(t *testing.T) {
	got, err := BuildUpsert(UpsertSpec{Table: `bad"table`, Columns: []string{"id"}})
	require.NoError(t, err)
	assert.Contains(t, got, `"bad""table"`)
}

func TestBuildCount(t *testing.T) {
	assert.Equal(t, `SELECT COUNT(*) FROM "jobs"`, BuildCount("jobs"))
}

func TestBuildLatest(t *testing.T) {
	assert.Equal(t,
		`SELECT "id", "tenant" FROM "uipath_configuration" ORDER BY "id" DESC LIMIT 1`,
		BuildLatest("uipath_configuration", "id", "id", "tenant"),
	)
	assert.Equal(t, `SELECT * FROM "t" ORDER BY "id" DESC LIMIT 1`, BuildLatest("t", "id"))
}
