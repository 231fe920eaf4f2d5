package repository

import (
	"time"

	"stackit/internal/common/security"
	"stackit/internal/domain/model"

	"github.com/gosimple/slug"
)

// Seed data for the demo store. These records are the whole universe of the
// memory-backed deployment: runtime writes never reach them.

const placeholderAvatar = "/placeholder-user.jpg"

func SeedQuestions() []model.Question {
	return []model.Question{
		{
			ID:       1,
			Title:    "How to implement authentication in Next.js 14 with App Router?",
			Slug:     slug.Make("How to implement authentication in Next.js 14 with App Router?"),
			Content:  "I'm trying to implement authentication in my Next.js 14 application...",
			AuthorID: 1,
			Author: model.Author{
				Name:       "john_dev",
				Avatar:     placeholderAvatar,
				Reputation: 1234,
			},
			Votes:      15,
			Answers:    3,
			Views:      234,
			Tags:       []string{"nextjs", "authentication", "typescript", "app-router"},
			Difficulty: model.DifficultyIntermediate,
			CreatedAt:  time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			UpdatedAt:  time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:       2,
			Title:    "Best practices for React state management in 2024",
			Slug:     slug.Make("Best practices for React state management in 2024"),
			Content:  "With so many state management solutions available...",
			AuthorID: 2,
			Author: model.Author{
				Name:       "sarah_codes",
				Avatar:     placeholderAvatar,
				Reputation: 2567,
			},
			Votes:      28,
			Answers:    7,
			Views:      456,
			Tags:       []string{"react", "state-management", "redux", "zustand"},
			Difficulty: model.DifficultyAdvanced,
			CreatedAt:  time.Date(2024, 1, 15, 6, 30, 0, 0, time.UTC),
			UpdatedAt:  time.Date(2024, 1, 15, 6, 30, 0, 0, time.UTC),
		},
	}
}

func SeedAnswers() []model.Answer {
	return []model.Answer{
		{
			ID:         1,
			QuestionID: 1,
			Content: "<p>Great question! For Next.js 14 with App Router, I recommend using a " +
				"combination of server actions and middleware for token validation and route protection.</p>",
			Author: model.Author{
				Name:       "auth_expert",
				Avatar:     placeholderAvatar,
				Reputation: 5678,
			},
			Votes:     23,
			Accepted:  true,
			CreatedAt: time.Date(2024, 1, 15, 11, 30, 0, 0, time.UTC),
		},
		{
			ID:         2,
			QuestionID: 1,
			Content: "<p>I'd also recommend looking into NextAuth.js (now Auth.js) for a more " +
				"complete solution that integrates well with the App Router.</p>",
			Author: model.Author{
				Name:       "nextjs_dev",
				Avatar:     placeholderAvatar,
				Reputation: 3456,
			},
			Votes:     12,
			Accepted:  false,
			CreatedAt: time.Date(2024, 1, 15, 11, 45, 0, 0, time.UTC),
		},
	}
}

// SeedUsers hashes the documented demo passwords at construction time so the
// plaintexts stay verifiable against fresh bcrypt hashes.
func SeedUsers() []model.User {
	return []model.User{
		{
			ID:             1,
			Email:          "demo@example.com",
			Username:       "demo_user",
			HashedPassword: mustHash("Demo123!"),
			Reputation:     1234,
			CreatedAt:      time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:             2,
			Email:          "admin@example.com",
			Username:       "admin_user",
			HashedPassword: mustHash("Admin123!"),
			Reputation:     5678,
			CreatedAt:      time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		},
	}
}

func mustHash(password string) string {
	hash, err := security.HashPassword(password)
	if err != nil {
		panic(err)
	}
	return hash
}
