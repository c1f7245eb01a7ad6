package commands

import (
	"fmt"
	"log"

	"workforce/backend/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "CREATE TYPE \"user_role\" AS ENUM",
		Query: `
        CREATE TYPE "user_role" AS ENUM ('OWNER', 'CO', 'MANAGER', 'SUPERVISOR', 'EMPLOYEE', 'ACCOUNTANT');`,
	},
	{
		Index:       2,
		Description: "Create table: users.",
		Query: `
        CREATE TABLE IF NOT EXISTS users (
            id serial primary key,
            full_name text not null,
            email text not null,
            password text not null,
            role user_role,
            assigned_store_id int,
            hourly_rate numeric(10,2) default 0,
            phone varchar(255),
            is_active boolean default true,
            created_at timestamptz default now(),
            created_by int references users(id),
            updated_at timestamptz,
            updated_by int references users(id),
            deleted_at timestamptz,
            deleted_by int references users(id)
        );
        CREATE UNIQUE INDEX IF NOT EXISTS uq_users_email ON users(email) WHERE deleted_at IS NULL;`,
	},
	{
		Index:       3,
		Description: "Create owner with email: owner@example.com, password: 1",
		Query: `
        INSERT INTO users(full_name, email, role, password)
        SELECT 'Owner', 'owner@example.com', 'OWNER', '$2a$10$NKtnMwDPFSQLG6uOi4Zqheru5Ygbj9TWFHjpl478rRSaO5cJ9QuH2'
        WHERE NOT EXISTS (SELECT email FROM users WHERE email = 'owner@example.com');
        `,
	},
	{
		Index:       4,
		Description: "Create table: stores.",
		Query: `
        CREATE TABLE IF NOT EXISTS stores (
            id serial primary key,
            name text not null,
            address text,
            phone varchar(255),
            latitude float not null,
            longitude float not null,
            radius float not null default 10,
            logo_url text,
            created_at timestamptz default now(),
            created_by int references users(id),
            updated_at timestamptz,
            updated_by int references users(id),
            deleted_at timestamptz,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       5,
		Description: "Create table: shifts.",
		Query: `
        CREATE TABLE IF NOT EXISTS shifts (
            id serial primary key,
            employee_id int not null references users(id),
            employee_name text,
            store_id int not null references stores(id),
            store_name text,
            supervisor_id int references users(id),
            supervisor_name text,
            work_day varchar(10) not null,
            start_time varchar(5) not null,
            end_time varchar(5) not null,
            created_at timestamptz default now(),
            created_by int references users(id),
            updated_at timestamptz,
            updated_by int references users(id),
            deleted_at timestamptz,
            deleted_by int references users(id)
        );
        CREATE INDEX IF NOT EXISTS idx_shifts_employee_day ON shifts(employee_id, work_day) WHERE deleted_at IS NULL;`,
	},
	{
		Index:       6,
		Description: "Create table: attendance.",
		Query: `
        CREATE TABLE IF NOT EXISTS attendance (
            id serial primary key,
            employee_id int not null references users(id),
            employee_name text,
            shift_id int references shifts(id),
            store_id int references stores(id),
            store_name text,
            status varchar(20) not null,
            clock_in_time timestamptz,
            clock_out_time timestamptz,
            clock_in_lat float,
            clock_in_lng float,
            clock_out_lat float,
            clock_out_lng float,
            is_late boolean default false,
            late_by_minutes int default 0,
            no_show boolean default false,
            auto_clock_out boolean default false,
            auto_detected boolean default false,
            paid boolean default false,
            paid_at timestamptz,
            paid_by int references users(id),
            created_at timestamptz default now(),
            created_by int references users(id),
            updated_at timestamptz,
            updated_by int references users(id),
            deleted_at timestamptz,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       7,
		Description: "Attendance invariants: one active record per employee, one no-show per shift.",
		Query: `
        CREATE UNIQUE INDEX IF NOT EXISTS uq_attendance_active_employee
            ON attendance(employee_id) WHERE status = 'CLOCKED_IN' AND deleted_at IS NULL;
        CREATE UNIQUE INDEX IF NOT EXISTS uq_attendance_no_show_shift
            ON attendance(shift_id) WHERE no_show = true AND deleted_at IS NULL;
        CREATE INDEX IF NOT EXISTS idx_attendance_employee_clock_in
            ON attendance(employee_id, clock_in_time) WHERE deleted_at IS NULL;`,
	},
	{
		Index:       8,
		Description: "Create table: payment_history.",
		Query: `
        CREATE TABLE IF NOT EXISTS payment_history (
            id serial primary key,
            employee_id int not null references users(id),
            employee_name text,
            month int not null,
            year int not null,
            total_hours numeric(10,2) not null,
            gross_earnings numeric(12,2) not null,
            late_count int not null default 0,
            late_penalty numeric(12,2) not null default 0,
            no_show_count int not null default 0,
            no_show_penalty numeric(12,2) not null default 0,
            net_earnings numeric(12,2) not null,
            payment_date timestamptz not null,
            paid_by int references users(id),
            paid_by_name text
        );
        CREATE UNIQUE INDEX IF NOT EXISTS uq_payment_period
            ON payment_history(employee_id, month, year);`,
	},
	{
		Index:       9,
		Description: "Create table: business_calendar.",
		Query: `
        CREATE TABLE IF NOT EXISTS business_calendar (
            work_day varchar(10) primary key,
            overtime_enabled boolean not null default false,
            set_by int references users(id),
            set_at timestamptz
        );`,
	},
}

// Migrate creates the scheme in the database.
func Migrate(db *postgresql.Database) {
	for _, s := range scheme {
		if _, err := db.Query(s.Query); err != nil {
			log.Fatalln("migrate error", err)
		}
	}
}

func MigrateUP(db *postgresql.Database) {
	var (
		version int
		dirty   bool
		er      *string
	)
	err := db.QueryRow("SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if err != nil {
		if err.Error() == `ERROR: relation "schema_migrations" does not exist (SQLSTATE=42P01)` {
			if _, err = db.Exec(`
				CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text);
				DELETE FROM schema_migrations;
				INSERT INTO schema_migrations (version, dirty) values (0, false);
			`); err != nil {
				log.Fatalln("migrate schema_migrations create error", err)
			}
			version = 0
			dirty = false
		} else {
			log.Fatalln("migrate schema_migrations scan: ", err)
		}
	}

	if dirty {
		for _, v := range scheme {
			if v.Index == version {
				if _, err = db.Exec(v.Query); err != nil {
					if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s'`, err.Error())); err != nil {
						log.Fatalln("migrate error", err)
					}
					log.Fatalln(fmt.Sprintf("migrate error version: %d", version), err)
				}
				if _, err = db.Exec(`UPDATE schema_migrations SET dirty = false, error = null`); err != nil {
					log.Fatalln("migrate error", err)
				}
			}
		}
	}

	for _, s := range scheme {
		if s.Index > version {
			if _, err = db.Exec(s.Query); err != nil {
				if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s', version = %d, dirty = true`, err.Error(), s.Index)); err != nil {
					log.Fatalln("migrate error", err)
				}
				log.Fatalln(fmt.Sprintf("migrate error version: %d", s.Index), err)
			}
			if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET version = %d`, s.Index)); err != nil {
				log.Fatalln("migrate error", err)
			}
		}
	}
}
