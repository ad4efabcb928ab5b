package service

import (
	"academia_backend/internal/model"
	"academia_backend/internal/repository"
	"academia_backend/internal/util"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo     *repository.QuizRepository
	LessonRepo   *repository.LessonRepository
	CourseRepo   *repository.CourseRepository
	UserRepo     *repository.UserRepository
	Gamification *GamificationService
	DB           *gorm.DB
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	lessonRepo *repository.LessonRepository,
	courseRepo *repository.CourseRepository,
	userRepo *repository.UserRepository,
	gamification *GamificationService,
	db *gorm.DB,
) *QuizService {
	return &QuizService{
		QuizRepo:     quizRepo,
		LessonRepo:   lessonRepo,
		CourseRepo:   courseRepo,
		UserRepo:     userRepo,
		Gamification: gamification,
		DB:           db,
	}
}

// AnswerSubmission is one answer of a play session. SelectedIndex -1 means
// the question timed out without an answer.
type AnswerSubmission struct {
	QuestionID    string `json:"questionId"`
	SelectedIndex int    `json:"selectedIndex"`
}

type QuizSubmission struct {
	QuizID    uint               `json:"quizId"`
	Answers   []AnswerSubmission `json:"answers"`
	TimeSpent int                `json:"timeSpent"`
}

type QuizGrade struct {
	AttemptID       uint                 `json:"attemptId"`
	Score           int                  `json:"score"`
	CorrectAnswers  int                  `json:"correctAnswers"`
	TotalQuestions  int                  `json:"totalQuestions"`
	Passed          bool                 `json:"passed"`
	DetailedResults []model.AnswerDetail `json:"detailedResults"`
	XPEarned        int                  `json:"xpEarned"`
}

// PlayQuestion is a bank question with the answer key stripped for delivery
// to the client.
type PlayQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type PlaySession struct {
	QuizID    uint           `json:"quizId"`
	LessonID  uint           `json:"lessonId"`
	Questions []PlayQuestion `json:"questions"`
}

func decodeBank(quiz *model.LessonQuiz) ([]model.QuizQuestion, error) {
	var bank []model.QuizQuestion
	if err := json.Unmarshal(quiz.Questions, &bank); err != nil {
		return nil, err
	}
	return bank, nil
}

// SampleQuestions returns n uniformly shuffled questions from the bank
// without mutating it. The whole shuffled bank is returned when n exceeds
// its size.
func SampleQuestions(bank []model.QuizQuestion, n int) []model.QuizQuestion {
	shuffled := make([]model.QuizQuestion, len(bank))
	copy(shuffled, bank)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

// GradeAnswers scores submitted answers against the bank. An answer whose
// question id is not in the bank counts as incorrect and carries the
// explanation "Question not found".
func GradeAnswers(bank []model.QuizQuestion, answers []AnswerSubmission) (int, []model.AnswerDetail) {
	byID := make(map[string]model.QuizQuestion, len(bank))
	for _, q := range bank {
		byID[q.ID] = q
	}

	correct := 0
	details := make([]model.AnswerDetail, 0, len(answers))
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			details = append(details, model.AnswerDetail{
				QuestionID:    a.QuestionID,
				SelectedIndex: a.SelectedIndex,
				CorrectIndex:  -1,
				IsCorrect:     false,
				Explanation:   "Question not found",
			})
			continue
		}

		isCorrect := a.SelectedIndex == q.CorrectIndex
		if isCorrect {
			correct++
		}
		details = append(details, model.AnswerDetail{
			QuestionID:    a.QuestionID,
			SelectedIndex: a.SelectedIndex,
			CorrectIndex:  q.CorrectIndex,
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
		})
	}
	return correct, details
}

// ComputeScore converts a correct count into a 0-100 percentage score.
func ComputeScore(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// ComputeXP is the canonical XP rule: a passing score earns 5 XP per full
// ten score points, a failing score earns nothing.
func ComputeXP(score int) int {
	if score < model.PassScore {
		return 0
	}
	return (score / 10) * 5
}

// GetPlaySession samples a fresh question set for one play-through of the
// lesson's quiz. Banks below the minimum size are not playable.
func (s *QuizService) GetPlaySession(lessonID uint) (*PlaySession, error) {
	quiz, err := s.QuizRepo.FindByLessonID(lessonID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuizNotAvailable
	}
	if err != nil {
		return nil, err
	}

	bank, err := decodeBank(quiz)
	if err != nil {
		return nil, err
	}
	if len(bank) < model.MinBankSize {
		return nil, util.ErrQuizNotAvailable
	}

	sampled := SampleQuestions(bank, model.PlaySessionSize)
	questions := make([]PlayQuestion, len(sampled))
	for i, q := range sampled {
		questions[i] = PlayQuestion{
			ID:       q.ID,
			Question: q.Question,
			Options:  q.Options,
		}
	}

	return &PlaySession{
		QuizID:    quiz.ID,
		LessonID:  lessonID,
		Questions: questions,
	}, nil
}

// SubmitQuiz grades a submission, persists the attempt and awards XP. The
// attempt insert and the XP increment share one transaction so neither can
// land without the other.
func (s *QuizService) SubmitQuiz(userID uint, submission QuizSubmission) (*QuizGrade, error) {
	quiz, err := s.QuizRepo.FindByID(submission.QuizID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	bank, err := decodeBank(quiz)
	if err != nil {
		return nil, err
	}

	correct, details := GradeAnswers(bank, submission.Answers)
	score := ComputeScore(correct, len(submission.Answers))
	passed := score >= model.PassScore
	xpEarned := ComputeXP(score)

	answersJSON, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}

	attempt := &model.QuizAttempt{
		LessonQuizID:   quiz.ID,
		UserID:         userID,
		Score:          score,
		CorrectAnswers: correct,
		TotalQuestions: len(submission.Answers),
		Passed:         passed,
		XPEarned:       xpEarned,
		Answers:        answersJSON,
		TimeSpent:      submission.TimeSpent,
		CompletedAt:    time.Now(),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.QuizRepo.SaveAttempt(tx, attempt); err != nil {
			return err
		}
		if xpEarned > 0 {
			return s.UserRepo.AddXP(tx, userID, xpEarned)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Streak bookkeeping is best effort, a failure must not fail the attempt.
	s.Gamification.RecordDailyActivity(userID)

	return &QuizGrade{
		AttemptID:       attempt.ID,
		Score:           score,
		CorrectAnswers:  correct,
		TotalQuestions:  len(submission.Answers),
		Passed:          passed,
		DetailedResults: details,
		XPEarned:        xpEarned,
	}, nil
}

// ValidateBank checks an authored question bank and returns one message per
// violated field.
func ValidateBank(questions []model.QuizQuestion) []string {
	var errs []string
	if len(questions) < model.MinBankSize {
		errs = append(errs, fmt.Sprintf("bank must contain at least %d questions, got %d", model.MinBankSize, len(questions)))
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			errs = append(errs, fmt.Sprintf("question %d: text must not be empty", i+1))
		}
		if len(q.Options) != model.OptionCount {
			errs = append(errs, fmt.Sprintf("question %d: must have exactly %d options, got %d", i+1, model.OptionCount, len(q.Options)))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= model.OptionCount {
			errs = append(errs, fmt.Sprintf("question %d: correctIndex must be between 0 and %d", i+1, model.OptionCount-1))
		}
	}
	return errs
}

// UpdateBank replaces the question bank of a lesson's quiz. Only the course's
// instructor (or an admin) may author questions.
func (s *QuizService) UpdateBank(userID uint, role model.UserRole, lessonID uint, questions []model.QuizQuestion) (*model.LessonQuiz, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	course, err := s.CourseRepo.FindByID(lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != userID && role != model.Admin && role != model.SuperAdmin {
		return nil, util.ErrPermissionDenied
	}

	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = model.GenerateUUID()
		}
	}

	bankJSON, err := json.Marshal(questions)
	if err != nil {
		return nil, err
	}

	quiz := &model.LessonQuiz{
		LessonID:  lessonID,
		Questions: bankJSON,
	}
	if err := s.QuizRepo.Upsert(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) GetAttempts(userID, lessonID uint) ([]model.QuizAttempt, error) {
	quiz, err := s.QuizRepo.FindByLessonID(lessonID)
	if err == gorm.ErrRecordNotFound {
		return []model.QuizAttempt{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.QuizRepo.FindAttemptsByUserAndQuiz(userID, quiz.ID)
}
