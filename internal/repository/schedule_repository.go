package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/hufspace/classroom-finder/internal/model"
)

// insertBatch bounds the number of rows per multi-row INSERT.
const insertBatch = 500

const schemaClassrooms = `CREATE TABLE IF NOT EXISTS classrooms (
	name VARCHAR(191) NOT NULL PRIMARY KEY
) DEFAULT CHARSET=utf8mb4`

const schemaRoomSchedules = `CREATE TABLE IF NOT EXISTS room_schedules (
	room   VARCHAR(191) NOT NULL,
	day    VARCHAR(4)   NOT NULL,
	period TINYINT      NOT NULL,
	PRIMARY KEY (room, day, period),
	CONSTRAINT fk_room_schedules_room FOREIGN KEY (room) REFERENCES classrooms(name) ON DELETE CASCADE
) DEFAULT CHARSET=utf8mb4`

// ScheduleRepo stores a ScheduleIndex as one row per room in classrooms
// and one row per occupied (room, day, period) in room_schedules.  Rooms
// free all week still get a classrooms row.
type ScheduleRepo struct {
	db *sql.DB
}

// NewScheduleRepo returns a ScheduleRepo bound to db.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{db: db} }

// EnsureSchema creates both tables when missing.
func (r *ScheduleRepo) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{schemaClassrooms, schemaRoomSchedules} {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Replace swaps the stored schedule for idx inside one transaction so
// readers never observe a half-written timetable.
func (r *ScheduleRepo) Replace(ctx context.Context, idx model.ScheduleIndex) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM room_schedules`); err != nil {
		return fmt.Errorf("clear room_schedules: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM classrooms`); err != nil {
		return fmt.Errorf("clear classrooms: %w", err)
	}

	rooms := make([]string, 0, len(idx))
	for room := range idx {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)

	roomArgs := make([][]any, 0, len(rooms))
	var slotArgs [][]any
	for _, room := range rooms {
		roomArgs = append(roomArgs, []any{room})
		for _, day := range model.Days {
			for _, p := range idx[room][day] {
				slotArgs = append(slotArgs, []any{room, day, p})
			}
		}
	}
	if err := insertRows(ctx, tx, `INSERT INTO classrooms (name) VALUES `, "(?)", roomArgs); err != nil {
		return fmt.Errorf("insert classrooms: %w", err)
	}
	if err := insertRows(ctx, tx, `INSERT INTO room_schedules (room, day, period) VALUES `, "(?, ?, ?)", slotArgs); err != nil {
		return fmt.Errorf("insert room_schedules: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}

// insertRows issues multi-row INSERTs of at most insertBatch rows each.
func insertRows(ctx context.Context, tx *sql.Tx, prefix, placeholder string, rows [][]any) error {
	for start := 0; start < len(rows); start += insertBatch {
		end := start + insertBatch
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]
		holders := make([]string, len(chunk))
		args := make([]any, 0, len(chunk)*len(chunk[0]))
		for i, row := range chunk {
			holders[i] = placeholder
			args = append(args, row...)
		}
		if _, err := tx.ExecContext(ctx, prefix+strings.Join(holders, ","), args...); err != nil {
			return err
		}
	}
	return nil
}

// Load rebuilds the index from both tables.  Every room carries all seven
// weekday keys; period lists come back sorted from the query.
func (r *ScheduleRepo) Load(ctx context.Context) (model.ScheduleIndex, error) {
	idx := model.ScheduleIndex{}

	rows, err := r.db.QueryContext(ctx, `SELECT name FROM classrooms`)
	if err != nil {
		return nil, fmt.Errorf("query classrooms: %w", err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan classroom: %w", err)
		}
		idx[name] = emptyWeek()
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate classrooms: %w", err)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if len(idx) == 0 {
		return nil, ErrEmptySchedule
	}

	rows, err = r.db.QueryContext(ctx,
		`SELECT room, day, period FROM room_schedules ORDER BY room, day, period`)
	if err != nil {
		return nil, fmt.Errorf("query room_schedules: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var room, day string
		var period int
		if err := rows.Scan(&room, &day, &period); err != nil {
			return nil, fmt.Errorf("scan room_schedule: %w", err)
		}
		sched, ok := idx[room]
		if !ok {
			// FK makes this unreachable unless the constraint was dropped
			sched = emptyWeek()
			idx[room] = sched
		}
		sched[day] = append(sched[day], period)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return idx, nil
}

func emptyWeek() model.RoomSchedule {
	week := make(model.RoomSchedule, len(model.Days))
	for _, d := range model.Days {
		week[d] = []int{}
	}
	return week
}
