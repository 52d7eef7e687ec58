package moderation

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ayush/blog-moderation/backend/internal/models"
)

// Seed is the initial content of a Store.
type Seed struct {
	Users    []models.PendingUser `yaml:"users"`
	Approved []models.PendingUser `yaml:"approved"`
	Drafts   []models.BlogDraft   `yaml:"drafts"`
}

const day = 24 * time.Hour

// DefaultSeed returns the built-in fixtures, timestamped relative to now.
func DefaultSeed(now time.Time) Seed {
	user := func(id, name, email, code string, age time.Duration) models.PendingUser {
		return models.PendingUser{ID: id, Name: name, Email: email, JoinedAt: now.Add(-age), ReferenceCode: code}
	}
	draft := func(id, title, author, email, category, tags, excerpt, content string) models.BlogDraft {
		return models.BlogDraft{
			ID: id, Title: title, Author: author, Email: email,
			Category: category, Tags: tags, Excerpt: excerpt, Content: content,
			SubmittedAt: now, UpdatedAt: now, Status: models.DraftPending,
		}
	}

	return Seed{
		Users: []models.PendingUser{
			user("u_1", "Alice Kumar", "alice@example.com", "ALICE2024", 0),
			user("u_2", "Ben Singh", "ben@example.com", "BEN2024", 0),
			user("u_3", "Carol Johnson", "carol@techstartup.com", "CAROL123", 1*day),
			user("u_4", "David Chen", "david@innovatecorp.com", "DAVID456", 2*day),
			user("u_5", "Emma Wilson", "emma@creativeagency.com", "EMMA789", 3*day),
			user("u_6", "Frank Rodriguez", "frank@startupinc.com", "FRANK101", 4*day),
			user("u_7", "Grace Lee", "grace@digitalstudio.com", "GRACE202", 5*day),
			user("u_8", "Henry Thompson", "henry@webdesign.com", "HENRY303", 6*day),
		},
		Drafts: []models.BlogDraft{
			draft("b_1", "Launch Plan", "Alice Kumar", "alice@example.com", "Business",
				"launch, strategy, planning",
				"A comprehensive guide to launching your product successfully in the market.",
				"# Launch Plan\n\nThis is a sample launch plan draft..."),
			draft("b_2", "2025 Roadmap", "Ben Singh", "ben@example.com", "Technology",
				"roadmap, 2025, planning",
				"Strategic roadmap for technology development and innovation in 2025.",
				"# 2025 Roadmap\n\nKey initiatives and milestones..."),
			draft("b_3", "Marketing Strategy", "Carol Johnson", "carol@techstartup.com", "Marketing",
				"marketing, strategy, digital",
				"Comprehensive marketing approach for Q1 with actionable insights.",
				"# Marketing Strategy\n\nComprehensive marketing approach for Q1..."),
			draft("b_4", "Product Development", "David Chen", "david@innovatecorp.com", "Development",
				"product, development, features",
				"New features and improvements planned for the upcoming release.",
				"# Product Development\n\nNew features and improvements planned..."),
			draft("b_5", "Brand Guidelines", "Emma Wilson", "emma@creativeagency.com", "Design",
				"brand, guidelines, identity",
				"Consistent brand identity and usage guidelines for teams.",
				"# Brand Guidelines\n\nConsistent brand identity and usage..."),
		},
	}
}

// LoadSeedFile reads a YAML seed. Missing timestamps default to now and a
// missing draft status defaults to pending.
func LoadSeedFile(path string, now time.Time) (Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file: %w", err)
	}
	var seed Seed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return Seed{}, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	seed.fill(now)
	if err := seed.Validate(); err != nil {
		return Seed{}, fmt.Errorf("seed file %s: %w", path, err)
	}
	return seed, nil
}

func (s *Seed) fill(now time.Time) {
	for _, users := range [][]models.PendingUser{s.Users, s.Approved} {
		for i := range users {
			if users[i].JoinedAt.IsZero() {
				users[i].JoinedAt = now
			}
		}
	}
	for i := range s.Drafts {
		d := &s.Drafts[i]
		if d.SubmittedAt.IsZero() {
			d.SubmittedAt = now
		}
		if d.UpdatedAt.IsZero() {
			d.UpdatedAt = d.SubmittedAt
		}
		if d.Status == "" {
			d.Status = models.DraftPending
		}
	}
}

// Validate enforces id uniqueness across pending and approved users and
// across drafts, and the draft timestamp and status invariants.
func (s Seed) Validate() error {
	userIDs := make(map[string]struct{}, len(s.Users)+len(s.Approved))
	for _, u := range append(append([]models.PendingUser{}, s.Users...), s.Approved...) {
		if u.ID == "" {
			return fmt.Errorf("user %q has empty id", u.Name)
		}
		if _, dup := userIDs[u.ID]; dup {
			return fmt.Errorf("duplicate user id %q", u.ID)
		}
		userIDs[u.ID] = struct{}{}
	}

	draftIDs := make(map[string]struct{}, len(s.Drafts))
	for _, d := range s.Drafts {
		if d.ID == "" {
			return fmt.Errorf("draft %q has empty id", d.Title)
		}
		if _, dup := draftIDs[d.ID]; dup {
			return fmt.Errorf("duplicate draft id %q", d.ID)
		}
		draftIDs[d.ID] = struct{}{}
		if !d.Status.Valid() {
			return fmt.Errorf("draft %q: unknown status %q", d.ID, d.Status)
		}
		if d.UpdatedAt.Before(d.SubmittedAt) {
			return fmt.Errorf("draft %q: updatedAt before submittedAt", d.ID)
		}
	}
	return nil
}
