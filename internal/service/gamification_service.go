package service

import (
	"academia_backend/internal/model"
	"academia_backend/internal/repository"
	"academia_backend/pkg/logger"
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	xpPerLevel          = 200
	leaderboardCacheKey = "gamification:leaderboard"
	leaderboardCacheTTL = 5 * time.Minute
)

type GamificationService struct {
	UserRepo     *repository.UserRepository
	ActivityRepo *repository.ActivityRepository
	QuizRepo     *repository.QuizRepository
	Redis        *redis.Client
}

func NewGamificationService(
	userRepo *repository.UserRepository,
	activityRepo *repository.ActivityRepository,
	quizRepo *repository.QuizRepository,
	rdb *redis.Client,
) *GamificationService {
	return &GamificationService{
		UserRepo:     userRepo,
		ActivityRepo: activityRepo,
		QuizRepo:     quizRepo,
		Redis:        rdb,
	}
}

type GamificationProfile struct {
	TotalXP       int   `json:"totalXp"`
	CurrentLevel  int   `json:"currentLevel"`
	NextLevelXP   int   `json:"nextLevelXp"`
	StreakDays    int   `json:"streakDays"`
	QuizzesPassed int64 `json:"quizzesPassed"`
}

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	User   string `json:"user"`
	XP     int    `json:"xp"`
	Avatar string `json:"avatar,omitempty"`
}

// CalculateLevel derives the level and the XP threshold of the next level.
// Levels advance every 200 XP.
func CalculateLevel(xp int) (int, int) {
	level := xp/xpPerLevel + 1
	nextLevelXP := level * xpPerLevel
	return level, nextLevelXP
}

func (s *GamificationService) GetProfile(userID uint) (*GamificationProfile, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	level, nextLevelXP := CalculateLevel(user.XP)

	streak := 0
	if latest, err := s.ActivityRepo.FindLatestByUser(userID); err == nil {
		// A streak survives until a full day has been skipped.
		today := StartOfDayUTC(time.Now())
		latestDay := StartOfDayUTC(latest.ActivityAt)
		if !latestDay.Before(today.AddDate(0, 0, -1)) {
			streak = latest.StreakDays
		}
	}

	passed, err := s.QuizRepo.CountPassedByUser(userID)
	if err != nil {
		return nil, err
	}

	return &GamificationProfile{
		TotalXP:       user.XP,
		CurrentLevel:  level,
		NextLevelXP:   nextLevelXP,
		StreakDays:    streak,
		QuizzesPassed: passed,
	}, nil
}

// RecordDailyActivity upserts today's streak row. At most one row per UTC
// day; the streak counter extends yesterday's row or restarts at one.
func (s *GamificationService) RecordDailyActivity(userID uint) {
	now := time.Now().UTC()

	if _, err := s.ActivityRepo.FindByUserAndDate(userID, now); err == nil {
		return // already recorded today
	}

	streak := 1
	if latest, err := s.ActivityRepo.FindLatestByUser(userID); err == nil {
		yesterday := StartOfDayUTC(now).AddDate(0, 0, -1)
		if StartOfDayUTC(latest.ActivityAt).Equal(yesterday) {
			streak = latest.StreakDays + 1
		}
	}

	activity := &model.DailyActivity{
		UserID:     userID,
		ActivityAt: now,
		StreakDays: streak,
	}
	if err := s.ActivityRepo.Create(activity); err != nil {
		logger.Log.Error("failed to record daily activity",
			zap.Uint("userId", userID), zap.Error(err))
	}
}

// GetLeaderboard returns the top users by XP, cached in redis.
func (s *GamificationService) GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	ctx := context.Background()

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, leaderboardCacheKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil && len(entries) >= limit {
				return entries[:limit], nil
			}
		}
	}

	users, err := s.UserRepo.FindTopByXP(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = LeaderboardEntry{
			Rank:   i + 1,
			User:   user.Name,
			XP:     user.XP,
			Avatar: user.Avatar,
		}
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.Redis.Set(ctx, leaderboardCacheKey, payload, leaderboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache leaderboard", zap.Error(err))
			}
		}
	}

	return entries, nil
}
