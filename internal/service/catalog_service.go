package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/edugram/edugram-backend/internal/config"
	"github.com/edugram/edugram-backend/internal/engine"
	"github.com/edugram/edugram-backend/internal/model"
	"github.com/edugram/edugram-backend/internal/repository"
)

// poolCacheTTL bounds how stale a cached module question pool can get.
const poolCacheTTL = 5 * time.Minute

// CatalogService exposes the subject/module/question catalog to learners
// and the admin CRUD surface, and assembles engine question pools.
type CatalogService struct {
	subjectRepo  *repository.SubjectRepository
	questionRepo *repository.QuestionRepository
	sessionRepo  *repository.PlaySessionRepository
	progress     *ProgressService
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	subjectRepo *repository.SubjectRepository,
	questionRepo *repository.QuestionRepository,
	sessionRepo *repository.PlaySessionRepository,
	progress *ProgressService,
	rdb *redis.Client,
	log zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		subjectRepo:  subjectRepo,
		questionRepo: questionRepo,
		sessionRepo:  sessionRepo,
		progress:     progress,
		rdb:          rdb,
		log:          log.With().Str("component", "catalog").Logger(),
	}
}

// ─── Learner catalog ────────────────────────────────────────────────────────

// ListSubjects returns all subjects in display order.
func (s *CatalogService) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	return s.subjectRepo.List(ctx)
}

// ListModulesWithProgress returns a subject's modules decorated with the
// user's completion state and best score.
func (s *CatalogService) ListModulesWithProgress(ctx context.Context, userID int, subjectID uuid.UUID) ([]model.ModuleWithProgress, error) {
	modules, err := s.subjectRepo.ListModules(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}

	completed, err := s.progress.CompletedModules(ctx, userID)
	if err != nil {
		// Progress decoration is best-effort; the catalog itself still loads.
		s.log.Warn().Err(err).Int("user_id", userID).Msg("failed to load completion state")
		completed = map[string]bool{}
	}

	best, err := s.sessionRepo.BestScoreByModule(ctx, userID, subjectID)
	if err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("failed to load best scores")
		best = map[uuid.UUID]int{}
	}

	out := make([]model.ModuleWithProgress, 0, len(modules))
	for _, m := range modules {
		out = append(out, model.ModuleWithProgress{
			Module:    m,
			Completed: completed[m.ID.String()],
			BestScore: best[m.ID],
		})
	}
	return out, nil
}

// GetModule returns a single module.
func (s *CatalogService) GetModule(ctx context.Context, moduleID uuid.UUID) (*model.Module, error) {
	return s.subjectRepo.GetModuleByID(ctx, moduleID)
}

// ─── Question pools ─────────────────────────────────────────────────────────

// QuestionPool loads a module's questions as engine questions, using a Redis
// cache in front of Postgres. A cache miss falls through to the database.
func (s *CatalogService) QuestionPool(ctx context.Context, moduleID uuid.UUID) ([]engine.Question, error) {
	cacheKey := config.CacheKey.QuestionPoolKey(moduleID.String())

	cached, err := s.rdb.Get(ctx, cacheKey).Result()
	if err == nil {
		if pool, jsonErr := unmarshalPool([]byte(cached)); jsonErr == nil {
			return pool, nil
		}
		// Corrupt cache entry; drop it and reload from the database.
		s.rdb.Del(ctx, cacheKey)
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Str("module_id", moduleID.String()).Msg("pool cache read failed")
	}

	questions, err := s.questionRepo.ListByModule(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	pool := make([]engine.Question, 0, len(questions))
	for _, q := range questions {
		pool = append(pool, toEngineQuestion(q))
	}

	if raw, err := marshalPool(pool); err == nil {
		if err := s.rdb.Set(ctx, cacheKey, raw, poolCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Str("module_id", moduleID.String()).Msg("pool cache write failed")
		}
	}

	return pool, nil
}

// cachedQuestion re-exposes the answer fields that engine.Question hides
// from client-facing JSON; the pool cache is server-internal.
type cachedQuestion struct {
	engine.Question
	ExpectedAnswer string `json:"expected_answer"`
	Hint           string `json:"hint"`
}

func marshalPool(pool []engine.Question) ([]byte, error) {
	wrapped := make([]cachedQuestion, len(pool))
	for i, q := range pool {
		wrapped[i] = cachedQuestion{Question: q, ExpectedAnswer: q.ExpectedAnswer, Hint: q.Hint}
	}
	return json.Marshal(wrapped)
}

func unmarshalPool(raw []byte) ([]engine.Question, error) {
	var wrapped []cachedQuestion
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	pool := make([]engine.Question, len(wrapped))
	for i, cq := range wrapped {
		q := cq.Question
		q.ExpectedAnswer = cq.ExpectedAnswer
		q.Hint = cq.Hint
		pool[i] = q
	}
	return pool, nil
}

// toEngineQuestion converts a stored question into its engine form. The
// expected answer for multiple choice is the exact option text; free-text
// answers are canonicalized to trimmed uppercase.
func toEngineQuestion(q model.Question) engine.Question {
	eq := engine.Question{
		ID:               q.ID.String(),
		Kind:             engine.Kind(q.Kind),
		Prompt:           q.Prompt,
		Options:          q.Options,
		Hint:             q.Hint,
		Explanation:      q.Explanation,
		Difficulty:       engine.Difficulty(q.Difficulty),
		TimeLimitSeconds: q.TimeLimitSeconds,
	}
	if q.Kind == model.QuestionKindFreeText {
		eq.ExpectedAnswer = strings.ToUpper(strings.TrimSpace(q.AnswerText))
	} else if q.AnswerIndex >= 0 && q.AnswerIndex < len(q.Options) {
		eq.ExpectedAnswer = q.Options[q.AnswerIndex]
	}
	return eq
}

// invalidatePool drops the cached pool after any question mutation.
func (s *CatalogService) invalidatePool(ctx context.Context, moduleID uuid.UUID) {
	if err := s.rdb.Del(ctx, config.CacheKey.QuestionPoolKey(moduleID.String())).Err(); err != nil {
		s.log.Warn().Err(err).Str("module_id", moduleID.String()).Msg("pool cache invalidation failed")
	}
}

// ─── Admin CRUD ─────────────────────────────────────────────────────────────

// CreateSubject inserts a new subject.
func (s *CatalogService) CreateSubject(ctx context.Context, req model.CreateSubjectRequest) (*model.Subject, error) {
	subject := &model.Subject{Name: req.Name, Description: req.Description, Position: req.Position}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// UpdateSubject modifies an existing subject.
func (s *CatalogService) UpdateSubject(ctx context.Context, id uuid.UUID, req model.UpdateSubjectRequest) (*model.Subject, error) {
	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	subject.Name = req.Name
	subject.Description = req.Description
	subject.Position = req.Position
	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// DeleteSubject removes a subject.
func (s *CatalogService) DeleteSubject(ctx context.Context, id uuid.UUID) error {
	return s.subjectRepo.Delete(ctx, id)
}

// CreateModule inserts a new module under a subject.
func (s *CatalogService) CreateModule(ctx context.Context, subjectID uuid.UUID, req model.CreateModuleRequest) (*model.Module, error) {
	if _, err := s.subjectRepo.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}
	module := &model.Module{
		SubjectID:   subjectID,
		Title:       req.Title,
		DefaultMode: req.DefaultMode,
		Position:    req.Position,
	}
	if err := s.subjectRepo.CreateModule(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

// UpdateModule modifies an existing module.
func (s *CatalogService) UpdateModule(ctx context.Context, id uuid.UUID, req model.UpdateModuleRequest) (*model.Module, error) {
	module, err := s.subjectRepo.GetModuleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	module.Title = req.Title
	module.DefaultMode = req.DefaultMode
	module.Position = req.Position
	if err := s.subjectRepo.UpdateModule(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

// DeleteModule removes a module.
func (s *CatalogService) DeleteModule(ctx context.Context, id uuid.UUID) error {
	return s.subjectRepo.DeleteModule(ctx, id)
}

// ListQuestions returns a module's stored questions for the admin editor.
func (s *CatalogService) ListQuestions(ctx context.Context, moduleID uuid.UUID) ([]model.Question, error) {
	return s.questionRepo.ListByModule(ctx, moduleID)
}

// CreateQuestion adds a question to a module and invalidates the pool cache.
func (s *CatalogService) CreateQuestion(ctx context.Context, moduleID uuid.UUID, req model.CreateQuestionRequest) (*model.Question, error) {
	if _, err := s.subjectRepo.GetModuleByID(ctx, moduleID); err != nil {
		return nil, err
	}
	question := questionFromRequest(moduleID, req)
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	s.invalidatePool(ctx, moduleID)
	return question, nil
}

// ReplaceQuestions swaps out a module's entire question set.
func (s *CatalogService) ReplaceQuestions(ctx context.Context, moduleID uuid.UUID, req model.ReplaceQuestionsRequest) error {
	if _, err := s.subjectRepo.GetModuleByID(ctx, moduleID); err != nil {
		return err
	}
	questions := make([]model.Question, len(req.Questions))
	for i, qr := range req.Questions {
		questions[i] = *questionFromRequest(moduleID, qr)
	}
	if err := s.questionRepo.ReplaceForModule(ctx, moduleID, questions); err != nil {
		return err
	}
	s.invalidatePool(ctx, moduleID)
	return nil
}

// DeleteQuestion removes a single question. The question must belong to the
// given module.
func (s *CatalogService) DeleteQuestion(ctx context.Context, moduleID, questionID uuid.UUID) error {
	q, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return err
	}
	if q.ModuleID != moduleID {
		return pgx.ErrNoRows
	}
	if err := s.questionRepo.Delete(ctx, questionID); err != nil {
		return err
	}
	s.invalidatePool(ctx, moduleID)
	return nil
}

func questionFromRequest(moduleID uuid.UUID, req model.CreateQuestionRequest) *model.Question {
	return &model.Question{
		ModuleID:         moduleID,
		Kind:             model.QuestionKind(req.Kind),
		Prompt:           req.Prompt,
		Options:          req.Options,
		AnswerIndex:      req.AnswerIndex,
		AnswerText:       req.AnswerText,
		Hint:             req.Hint,
		Explanation:      req.Explanation,
		Difficulty:       req.Difficulty,
		TimeLimitSeconds: req.TimeLimitSeconds,
	}
}
