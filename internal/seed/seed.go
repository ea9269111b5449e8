// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"haven/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// DefaultPassword is the password set on every seeded account.
const DefaultPassword = "SeededPassword1"

var postTemplates = []string{
	"Just got my latest lab results back and %s. Anyone else been through this?",
	"Having a rough week with flare-ups. %s helped a little.",
	"My doctor suggested %s, curious what your experience has been.",
	"Small win today: %s. Celebrating the little things.",
	"Does anyone have tips for %s? Struggling to find what works.",
	"Six months in and finally feeling like %s. Hang in there everyone.",
}

// Seeder populates the database with demo data.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder returns a Seeder bound to the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

// ClearAll removes all seedable data. Order matters for foreign keys.
func (s *Seeder) ClearAll() error {
	tables := []interface{}{
		&models.AuditLogEntry{},
		&models.CrisisTicket{},
		&models.Report{},
		&models.Post{},
		&models.ConditionBoard{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", table, err)
		}
	}
	log.Println("✓ Database cleared")
	return nil
}

// SeedUsers creates demo accounts: one admin, a couple of moderators and the
// rest regular users.
func (s *Seeder) SeedUsers(count int) ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		role := models.RoleUser
		switch {
		case i == 0:
			role = models.RoleAdmin
		case i <= 2:
			role = models.RoleModerator
		}

		email := fmt.Sprintf("%s%d@example.com", strings.ToLower(gofakeit.Username()), i)
		user := &models.User{
			Email:        &email,
			PasswordHash: &hashStr,
			DisplayName:  gofakeit.Name(),
			IsAnonymous:  rand.Intn(3) == 0,
			Role:         role,
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %d: %w", i, err)
		}
		users = append(users, user)
	}

	log.Printf("✓ %d users created (1 admin, 2 moderators)", len(users))
	return users, nil
}

// SeedPosts spreads posts across the boards. Roughly a fifth land on no
// board at all, matching real usage of the general feed.
func (s *Seeder) SeedPosts(users []*models.User, count int) ([]*models.Post, error) {
	var boards []models.ConditionBoard
	if err := s.db.Find(&boards).Error; err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to author posts")
	}

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		template := postTemplates[rand.Intn(len(postTemplates))]
		post := &models.Post{
			AuthorID: author.ID,
			Content:  fmt.Sprintf(template, gofakeit.HipsterSentence(4)),
		}
		if len(boards) > 0 && rand.Intn(5) != 0 {
			board := boards[rand.Intn(len(boards))]
			post.BoardID = &board.ID
		}
		if err := s.db.Create(post).Error; err != nil {
			return nil, fmt.Errorf("failed to create post %d: %w", i, err)
		}
		posts = append(posts, post)
	}

	log.Printf("✓ %d posts created", len(posts))
	return posts, nil
}

// SeedReports files open reports against a sample of posts so the
// moderation queue has content to review.
func (s *Seeder) SeedReports(users []*models.User, posts []*models.Post, count int) error {
	if len(users) < 2 || len(posts) == 0 {
		return nil
	}

	reasons := []models.ReportReason{
		models.ReasonHarassment,
		models.ReasonSpam,
		models.ReasonInappropriate,
	}

	created := 0
	for i := 0; i < count && i < len(posts); i++ {
		post := posts[i]
		reporter := users[rand.Intn(len(users))]
		if reporter.ID == post.AuthorID {
			continue
		}

		report := &models.Report{
			ReportingUserID: &reporter.ID,
			ReportedUserID:  &post.AuthorID,
			PostID:          &post.ID,
			Reason:          reasons[rand.Intn(len(reasons))],
			Details:         gofakeit.Sentence(8),
			Status:          models.ReportStatusOpen,
		}
		if err := s.db.Create(report).Error; err != nil {
			return fmt.Errorf("failed to create report: %w", err)
		}
		created++
	}

	log.Printf("✓ %d open reports created", created)
	return nil
}

// SeedAll runs the full demo data pipeline.
func (s *Seeder) SeedAll(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	if err := Boards(s.db); err != nil {
		return fmt.Errorf("failed to seed boards: %w", err)
	}
	log.Printf("✓ %d condition boards available", len(BuiltInBoards))

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return err
	}

	posts, err := s.SeedPosts(users, opts.NumPosts)
	if err != nil {
		return err
	}

	return s.SeedReports(users, posts, opts.NumPosts/10)
}
