// store.go
//
// sqlite-backed history of harness runs.  Each run gets a row in
// bench_runs (with the sonnet-encoded report) and one row per scenario in
// bench_results, so runs can be compared across builds and machines.

package bench

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"passenger/constants"
	"passenger/utils"
)

const schema = `
CREATE TABLE IF NOT EXISTS bench_runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at  INTEGER NOT NULL,
	go_version  TEXT    NOT NULL,
	gomaxprocs  INTEGER NOT NULL,
	report_json TEXT    NOT NULL
);
CREATE TABLE IF NOT EXISTS ` + constants.ResultsTable + ` (
	run_id     INTEGER NOT NULL REFERENCES bench_runs(id),
	name       TEXT    NOT NULL,
	bound      INTEGER NOT NULL,
	ops        INTEGER NOT NULL,
	elapsed_ns INTEGER NOT NULL,
	ns_per_op  REAL    NOT NULL,
	complete   INTEGER NOT NULL,
	verified   INTEGER NOT NULL,
	digest_ok  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS bench_results_name ON ` + constants.ResultsTable + ` (name, run_id);
`

// Store appends reports to a sqlite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores rep in one transaction and returns the run id.
func (s *Store) Save(rep *Report) (int64, error) {
	blob, err := EncodeReport(rep)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO bench_runs (started_at, go_version, gomaxprocs, report_json) VALUES (?, ?, ?, ?)`,
		rep.StartedAt.UnixNano(), rep.GoVersion, rep.GOMAXPROCS, utils.B2s(blob))
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`INSERT INTO ` + constants.ResultsTable +
		` (run_id, name, bound, ops, elapsed_ns, ns_per_op, complete, verified, digest_ok)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, r := range rep.Results {
		if _, err := stmt.Exec(runID, r.Name, r.Bound, int64(r.Ops), r.Elapsed.Nanoseconds(),
			r.NsPerOp, r.Complete, r.Verified, r.DigestOK); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// LoadReport returns the report stored under runID.
func (s *Store) LoadReport(runID int64) (*Report, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT report_json FROM bench_runs WHERE id = ?`, runID).Scan(&blob)
	if err != nil {
		return nil, err
	}
	return DecodeReport(blob)
}

// History returns the stored results of scenario name, newest run first,
// at most limit rows.
func (s *Store) History(name string, limit int) ([]Result, error) {
	rows, err := s.db.Query(`
		SELECT name, bound, ops, elapsed_ns, ns_per_op, complete, verified, digest_ok
		FROM `+constants.ResultsTable+`
		WHERE name = ?
		ORDER BY run_id DESC
		LIMIT ?`, name, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		var ops, elapsed int64
		if err := rows.Scan(&r.Name, &r.Bound, &ops, &elapsed, &r.NsPerOp,
			&r.Complete, &r.Verified, &r.DigestOK); err != nil {
			return nil, err
		}
		r.Ops = uint64(ops)
		r.Elapsed = time.Duration(elapsed)
		out = append(out, r)
	}
	return out, rows.Err()
}
