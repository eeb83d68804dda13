package main

import (
	"context"
	"fmt"
	"time"

	"github.com/edugram/edugram-backend/internal/config"
	"github.com/edugram/edugram-backend/internal/database"
	"github.com/edugram/edugram-backend/internal/logger"
	"github.com/edugram/edugram-backend/internal/model"
	"github.com/edugram/edugram-backend/internal/repository"
)

// seedModule bundles one module with its question set.
type seedModule struct {
	title     string
	mode      string
	questions []model.Question
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	subjectRepo := repository.NewSubjectRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)

	fmt.Println("=== Seeding Demo Content ===")

	subject := &model.Subject{
		Name:        "Science",
		Description: "Physics, chemistry and astronomy basics",
		Position:    1,
	}
	if err := subjectRepo.Create(ctx, subject); err != nil {
		log.Fatal().Err(err).Msg("Failed to create subject")
	}
	fmt.Printf("Created subject %q (%s)\n", subject.Name, subject.ID)

	modules := []seedModule{
		{
			title: "The Solar System",
			mode:  "quiz",
			questions: []model.Question{
				mc("Which planet is known as the Red Planet?",
					[]string{"Venus", "Mars", "Jupiter", "Mercury"}, 1,
					"It is named after the Roman god of war.",
					"Iron oxide dust gives Mars its reddish color.", "EASY", 0),
				mc("Which planet has the most moons?",
					[]string{"Earth", "Mars", "Saturn", "Neptune"}, 2,
					"It is also famous for its rings.",
					"Saturn has over 140 confirmed moons.", "MEDIUM", 0),
				mc("What force keeps planets in orbit around the Sun?",
					[]string{"Magnetism", "Friction", "Gravity", "Inertia"}, 2,
					"", "Gravity pulls every mass toward every other mass.", "EASY", 0),
				free("What is the name of the galaxy we live in?",
					"Milky Way", "It is visible as a faint band across the night sky.",
					"The Solar System sits in one of the Milky Way's spiral arms.", "MEDIUM", 0),
				mc("Which is the closest star to Earth?",
					[]string{"Sirius", "Alpha Centauri", "The Sun", "Polaris"}, 2,
					"You see it every day.",
					"The Sun is about 150 million kilometers away.", "EASY", 0),
			},
		},
		{
			title: "Atoms and Matter",
			mode:  "riddle",
			questions: []model.Question{
				free("I am the smallest unit of an element that keeps its properties. What am I?",
					"Atom", "Everything around you is made of these.",
					"Atoms combine into molecules, which build all matter.", "EASY", 0),
				free("I have no charge and live in the nucleus. What am I?",
					"Neutron", "My name hints at my neutrality.",
					"Neutrons stabilize the nucleus alongside protons.", "MEDIUM", 0),
				free("Heat me and I turn from liquid to gas. What process am I?",
					"Evaporation", "It happens to puddles on a sunny day.",
					"Evaporation is vaporization from a liquid's surface.", "MEDIUM", 0),
			},
		},
		{
			title: "Forces and Motion",
			mode:  "puzzle",
			questions: []model.Question{
				mc("What unit is force measured in?",
					[]string{"Joule", "Watt", "Newton", "Pascal"}, 2,
					"Named after the scientist who described gravity.",
					"One newton accelerates one kilogram at one meter per second squared.", "EASY", 0),
				mc("An object in motion stays in motion unless acted on by...",
					[]string{"gravity", "an external force", "friction", "momentum"}, 1,
					"", "This is Newton's first law of motion.", "MEDIUM", 0),
				free("What do we call the resistance between two surfaces sliding past each other?",
					"Friction", "It is why brakes work.",
					"Friction converts kinetic energy into heat.", "EASY", 0),
			},
		},
	}

	questionCount := 0
	for i, sm := range modules {
		module := &model.Module{
			SubjectID:   subject.ID,
			Title:       sm.title,
			DefaultMode: sm.mode,
			Position:    i + 1,
		}
		if err := subjectRepo.CreateModule(ctx, module); err != nil {
			log.Fatal().Err(err).Str("module", sm.title).Msg("Failed to create module")
		}

		for j := range sm.questions {
			q := sm.questions[j]
			q.ModuleID = module.ID
			if err := questionRepo.Create(ctx, &q); err != nil {
				log.Fatal().Err(err).Str("module", sm.title).Msg("Failed to create question")
			}
			questionCount++
		}
		fmt.Printf("Created module %q with %d questions\n", sm.title, len(sm.questions))
	}

	fmt.Printf("\nSeed completed! %d modules, %d questions.\n", len(modules), questionCount)
}

func mc(prompt string, options []string, answerIndex int, hint, explanation, difficulty string, limit int) model.Question {
	return model.Question{
		Kind:             model.QuestionKindMultipleChoice,
		Prompt:           prompt,
		Options:          options,
		AnswerIndex:      answerIndex,
		Hint:             hint,
		Explanation:      explanation,
		Difficulty:       difficulty,
		TimeLimitSeconds: limit,
	}
}

func free(prompt, answer, hint, explanation, difficulty string, limit int) model.Question {
	return model.Question{
		Kind:             model.QuestionKindFreeText,
		Prompt:           prompt,
		AnswerText:       answer,
		Hint:             hint,
		Explanation:      explanation,
		Difficulty:       difficulty,
		TimeLimitSeconds: limit,
	}
}
