package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"dsfs/internal/config"
	"dsfs/internal/db"
	"dsfs/internal/db/mock"
	"dsfs/internal/fixtures"
	"dsfs/internal/validate"
	"dsfs/models"
)

const usage = `usage: fixtures <command> [args]

commands:
  seed                                  insert the demo fixtures
  import-students <file.csv>            upsert students from a CSV export
  check-password <username> <password>  verify a fixture account password`

var (
	bracketPattern  = regexp.MustCompile(`\[[^\]]*\]`)
	numberPattern   = regexp.MustCompile(`[-+]?\d*\.?\d+`)
	cleanWhitespace = regexp.MustCompile(`\s+`)
	slugPattern     = regexp.MustCompile(`[^a-z0-9]+`)
)

// openDatabase connects using the environment configuration.
var openDatabase = func(ctx context.Context) (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Database.UseMock {
		return mock.New(ctx)
	}
	return db.Configure(cfg.Database)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "fixtures: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	switch args[0] {
	case "seed":
		database, err := openDatabase(ctx)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		if err := mock.Seed(ctx, database); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		fmt.Fprintln(out, "Seeded demo fixtures")
		return nil

	case "import-students":
		if len(args) != 2 || strings.TrimSpace(args[1]) == "" {
			return errors.New("import-students requires a csv path")
		}
		csvPath := args[1]
		if _, err := os.Stat(csvPath); err != nil {
			return fmt.Errorf("locate csv: %w", err)
		}
		database, err := openDatabase(ctx)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		imported, err := importStudents(ctx, database, csvPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Imported %d students from %s\n", imported, filepath.Base(csvPath))
		return nil

	case "check-password":
		if len(args) != 3 {
			return errors.New("check-password requires a username and a password")
		}
		database, err := openDatabase(ctx)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		if err := checkPassword(ctx, database, args[1], args[2]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Password matches for %s\n", args[1])
		return nil

	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func checkPassword(ctx context.Context, database *gorm.DB, username, password string) error {
	source, err := fixtures.New(database)
	if err != nil {
		return err
	}
	user, err := source.UserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user.PasswordHash == "" {
		return fmt.Errorf("user %q has no password set", username)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return fmt.Errorf("password mismatch for %q", username)
	}
	return nil
}

func importStudents(ctx context.Context, database *gorm.DB, csvPath string) (int, error) {
	records, err := readCSV(csvPath)
	if err != nil {
		return 0, fmt.Errorf("read csv: %w", err)
	}

	imported := 0
	for idx, record := range records {
		student, err := buildStudent(record)
		if err != nil {
			return imported, fmt.Errorf("record %d (%s): %w", idx+1, record["name"], err)
		}

		if err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var existing models.Student
			err := tx.Where("id = ?", student.ID).First(&existing).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(&student).Error; err != nil {
					return fmt.Errorf("create student %q: %w", student.ID, err)
				}
				return nil
			case err != nil:
				return fmt.Errorf("find student %q: %w", student.ID, err)
			}

			updates := map[string]any{
				"name":         student.Name,
				"username":     student.Username,
				"university":   student.University,
				"course":       student.Course,
				"year":         student.Year,
				"gpa":          student.GPA,
				"bio":          student.Bio,
				"funding_goal": student.FundingGoal,
			}
			if student.Avatar != "" {
				updates["avatar"] = student.Avatar
			}
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return fmt.Errorf("update student %q: %w", student.ID, err)
			}
			if len(student.Achievements) > 0 {
				existing.Achievements = mergeAchievements(existing.Achievements, student.Achievements)
				if err := tx.Model(&existing).Select("achievements").Updates(&existing).Error; err != nil {
					return fmt.Errorf("update achievements for %q: %w", student.ID, err)
				}
			}
			return nil
		}); err != nil {
			return imported, fmt.Errorf("record %d (%s): %w", idx+1, record["name"], err)
		}
		imported++
	}
	return imported, nil
}

// readCSV returns one map per row keyed by the lower-cased header.
func readCSV(path string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		record := make(map[string]string, len(header))
		for idx, key := range header {
			if idx >= len(row) {
				continue
			}
			record[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(row[idx])
		}
		records = append(records, record)
	}

	return records, nil
}

func buildStudent(row map[string]string) (models.Student, error) {
	name := normalizeText(row["name"])
	username := normalizeValue(row["username"])
	if username == "" {
		username = strings.ReplaceAll(slugify(name), "-", "_")
	}
	id := normalizeValue(row["id"])
	if id == "" {
		id = username
	}

	student := models.Student{
		ID:           id,
		Name:         name,
		Username:     username,
		Avatar:       normalizeValue(row["avatar"]),
		University:   normalizeText(row["university"]),
		Course:       normalizeText(row["course"]),
		Year:         normalizeValue(row["year"]),
		GPA:          parseFirstNumber(row["gpa"]),
		Bio:          normalizeText(row["bio"]),
		FundingGoal:  parseFirstNumber(strings.ReplaceAll(row["funding goal"], ",", "")),
		Achievements: buildAchievements(row["achievements"]),
	}

	if err := student.Validate(); err != nil {
		return models.Student{}, err
	}
	if err := validate.GPA(student.GPA); err != nil {
		return models.Student{}, err
	}
	if student.FundingGoal != 0 {
		if err := validate.FundingAmount(student.FundingGoal); err != nil {
			return models.Student{}, fmt.Errorf("funding goal: %w", err)
		}
	}
	return student, nil
}

func normalizeValue(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "N/A") {
		return ""
	}
	return value
}

func normalizeText(value string) string {
	value = normalizeValue(value)
	if value == "" {
		return value
	}
	value = cleanWhitespace.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

func parseFirstNumber(value string) float64 {
	value = normalizeValue(value)
	if value == "" {
		return 0
	}

	match := numberPattern.FindString(value)
	if match == "" {
		return 0
	}

	parsed, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// buildAchievements splits a ';' or '|' separated list, dropping footnote
// markers and case-insensitive duplicates.
func buildAchievements(value string) []string {
	value = normalizeValue(value)
	if value == "" {
		return nil
	}

	value = strings.ReplaceAll(value, "|", ";")
	var out []string
	seen := map[string]struct{}{}
	for _, part := range strings.Split(value, ";") {
		clean := strings.TrimSpace(bracketPattern.ReplaceAllString(part, ""))
		if clean == "" {
			continue
		}
		key := strings.ToLower(clean)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, clean)
	}
	return out
}

func mergeAchievements(current, incoming []string) []string {
	merged := append([]string(nil), current...)
	seen := make(map[string]struct{}, len(current))
	for _, a := range current {
		seen[strings.ToLower(a)] = struct{}{}
	}
	for _, a := range incoming {
		if _, ok := seen[strings.ToLower(a)]; ok {
			continue
		}
		seen[strings.ToLower(a)] = struct{}{}
		merged = append(merged, a)
	}
	return merged
}

func slugify(value string) string {
	value = strings.ToLower(value)
	value = slugPattern.ReplaceAllString(value, "-")
	return strings.Trim(value, "-")
}
