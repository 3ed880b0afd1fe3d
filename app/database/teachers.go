package database

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/nbri15/final-dream-tracker/app/models"
)

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// CreateTeacher inserts a staff account, hashing the given raw password
func CreateTeacher(q Queryer, teacher *models.Teacher, rawPassword string) error {
	if teacher.ID == "" {
		teacher.ID = NewID()
	}
	hash, err := hashPassword(rawPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	teacher.PasswordHash = hash

	_, err = q.Exec(
		`INSERT INTO teachers (id, username, password_hash, class_id, is_admin, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		teacher.ID, teacher.Username, teacher.PasswordHash,
		nullStr(teacher.ClassID), teacher.IsAdmin, teacher.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to create teacher: %w", err)
	}
	return nil
}

// GetTeacherByUsername fetches one active staff account, nil when absent
func GetTeacherByUsername(q Queryer, username string) (*models.Teacher, error) {
	var t models.Teacher
	var classID sql.NullString
	err := q.QueryRow(
		`SELECT id, username, password_hash, class_id, is_admin, is_active
		 FROM teachers WHERE username = $1 AND is_active = TRUE`,
		username,
	).Scan(&t.ID, &t.Username, &t.PasswordHash, &classID, &t.IsAdmin, &t.IsActive)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teacher: %w", err)
	}
	t.ClassID = strPtr(classID)
	return &t, nil
}
