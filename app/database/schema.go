package database

// schemaStatements is the full relational schema. Every statement is written
// in the dialect subset shared by postgres and sqlite: TEXT uuid keys
// generated app-side, explicit timestamps, no serial columns.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS academic_years (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL UNIQUE,
		start_date TIMESTAMP,
		end_date TIMESTAMP,
		is_current BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS classes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		year_group INTEGER,
		is_archived BOOLEAN NOT NULL DEFAULT FALSE,
		is_archive BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS teachers (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		class_id TEXT REFERENCES classes(id),
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS pupils (
		id TEXT PRIMARY KEY,
		class_id TEXT NOT NULL REFERENCES classes(id),
		number INTEGER,
		name TEXT NOT NULL,
		gender TEXT,
		pupil_premium BOOLEAN NOT NULL DEFAULT FALSE,
		laps BOOLEAN NOT NULL DEFAULT FALSE,
		service_child BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pupils_class ON pupils(class_id)`,
	`CREATE TABLE IF NOT EXISTS pupil_profiles (
		id TEXT PRIMARY KEY,
		pupil_id TEXT NOT NULL UNIQUE REFERENCES pupils(id),
		year_group INTEGER,
		lac_pla BOOLEAN NOT NULL DEFAULT FALSE,
		send BOOLEAN NOT NULL DEFAULT FALSE,
		ehcp BOOLEAN NOT NULL DEFAULT FALSE,
		vulnerable BOOLEAN NOT NULL DEFAULT FALSE,
		eyfs_gld BOOLEAN,
		y1_phonics INTEGER,
		y2_phonics_retake INTEGER,
		enrichment TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS pupil_class_history (
		id TEXT PRIMARY KEY,
		pupil_id TEXT NOT NULL REFERENCES pupils(id),
		class_id TEXT NOT NULL REFERENCES classes(id),
		academic_year_id TEXT NOT NULL REFERENCES academic_years(id),
		created_at TIMESTAMP NOT NULL,
		UNIQUE (pupil_id, class_id, academic_year_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_history_year ON pupil_class_history(academic_year_id)`,
	`CREATE TABLE IF NOT EXISTS term_configs (
		id TEXT PRIMARY KEY,
		class_id TEXT NOT NULL REFERENCES classes(id),
		academic_year_id TEXT NOT NULL REFERENCES academic_years(id),
		term TEXT NOT NULL,
		arith_max REAL,
		reason_max REAL,
		reading_p1_max REAL,
		reading_p2_max REAL,
		spelling_max REAL,
		grammar_max REAL,
		UNIQUE (class_id, academic_year_id, term)
	)`,
	`CREATE TABLE IF NOT EXISTS paper_templates (
		id TEXT PRIMARY KEY,
		subject TEXT NOT NULL,
		paper TEXT NOT NULL,
		academic_year_id TEXT NOT NULL REFERENCES academic_years(id),
		year_group INTEGER NOT NULL,
		term TEXT NOT NULL,
		title TEXT,
		is_active BOOLEAN NOT NULL DEFAULT FALSE,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_templates_scope
		ON paper_templates(subject, paper, academic_year_id, year_group, term)`,
	`CREATE TABLE IF NOT EXISTS paper_template_questions (
		id TEXT PRIMARY KEY,
		template_id TEXT NOT NULL REFERENCES paper_templates(id),
		number INTEGER NOT NULL,
		max_mark REAL NOT NULL DEFAULT 1.0,
		question_type TEXT,
		strand TEXT,
		notes TEXT,
		UNIQUE (template_id, number)
	)`,
	`CREATE TABLE IF NOT EXISTS assessments (
		id TEXT PRIMARY KEY,
		class_id TEXT NOT NULL REFERENCES classes(id),
		academic_year_id TEXT NOT NULL REFERENCES academic_years(id),
		term TEXT NOT NULL,
		subject TEXT NOT NULL,
		paper TEXT NOT NULL,
		title TEXT NOT NULL,
		template_id TEXT REFERENCES paper_templates(id),
		template_version INTEGER,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (class_id, academic_year_id, term, subject, paper)
	)`,
	`CREATE TABLE IF NOT EXISTS assessment_questions (
		id TEXT PRIMARY KEY,
		assessment_id TEXT NOT NULL REFERENCES assessments(id),
		number INTEGER NOT NULL,
		max_mark REAL NOT NULL DEFAULT 1.0,
		strand TEXT,
		question_type TEXT,
		notes TEXT,
		UNIQUE (assessment_id, number)
	)`,
	`CREATE TABLE IF NOT EXISTS pupil_question_scores (
		id TEXT PRIMARY KEY,
		assessment_id TEXT NOT NULL REFERENCES assessments(id),
		pupil_id TEXT NOT NULL REFERENCES pupils(id),
		question_id TEXT NOT NULL REFERENCES assessment_questions(id),
		mark REAL NOT NULL DEFAULT 0.0,
		updated_at TIMESTAMP NOT NULL,
		updated_by_teacher_id TEXT,
		UNIQUE (pupil_id, question_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scores_assessment ON pupil_question_scores(assessment_id)`,
	`CREATE TABLE IF NOT EXISTS results (
		id TEXT PRIMARY KEY,
		pupil_id TEXT NOT NULL REFERENCES pupils(id),
		academic_year_id TEXT NOT NULL REFERENCES academic_years(id),
		class_id_snapshot TEXT REFERENCES classes(id),
		term TEXT NOT NULL,
		subject TEXT NOT NULL DEFAULT 'maths',
		arithmetic REAL,
		reasoning REAL,
		reading_p1 REAL,
		reading_p2 REAL,
		spelling REAL,
		grammar REAL,
		combined_pct REAL,
		summary TEXT,
		note TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		updated_by_teacher_id TEXT,
		UNIQUE (pupil_id, academic_year_id, term, subject)
	)`,
	`CREATE TABLE IF NOT EXISTS writing_results (
		id TEXT PRIMARY KEY,
		pupil_id TEXT NOT NULL REFERENCES pupils(id),
		academic_year_id TEXT NOT NULL REFERENCES academic_years(id),
		term TEXT NOT NULL,
		band TEXT NOT NULL,
		note TEXT,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (pupil_id, academic_year_id, term)
	)`,
	`CREATE TABLE IF NOT EXISTS interventions (
		id TEXT PRIMARY KEY,
		pupil_id TEXT NOT NULL REFERENCES pupils(id),
		class_id TEXT NOT NULL REFERENCES classes(id),
		academic_year_id TEXT NOT NULL REFERENCES academic_years(id),
		term TEXT NOT NULL,
		paper TEXT NOT NULL,
		pct REAL,
		status TEXT NOT NULL DEFAULT 'proposed',
		selected_by TEXT,
		support_plan TEXT,
		teacher_note TEXT,
		teacher_updated_at TIMESTAMP,
		focus_areas TEXT,
		pre_result TEXT,
		post_result TEXT,
		review_due_date TIMESTAMP,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE (pupil_id, academic_year_id, term, paper)
	)`,
	`CREATE TABLE IF NOT EXISTS sats_headers (
		id TEXT PRIMARY KEY,
		class_id TEXT NOT NULL REFERENCES classes(id),
		academic_year_id TEXT NOT NULL REFERENCES academic_years(id),
		key TEXT NOT NULL,
		header TEXT,
		grp TEXT NOT NULL,
		ord INTEGER NOT NULL DEFAULT 0,
		UNIQUE (class_id, academic_year_id, key)
	)`,
	`CREATE TABLE IF NOT EXISTS sats_scores (
		id TEXT PRIMARY KEY,
		pupil_id TEXT NOT NULL REFERENCES pupils(id),
		academic_year_id TEXT NOT NULL REFERENCES academic_years(id),
		key TEXT NOT NULL,
		value REAL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE (pupil_id, academic_year_id, key)
	)`,
}
