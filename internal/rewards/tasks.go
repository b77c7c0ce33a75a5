package rewards

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/TinyWins_Go/internal/domain"
	"github.com/osse101/TinyWins_Go/internal/logger"
	"github.com/osse101/TinyWins_Go/internal/milestone"
	"github.com/osse101/TinyWins_Go/internal/repository"
)

func normalizeTask(taskID string) (string, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return "", fmt.Errorf("%w: task id is required", domain.ErrInvalidInput)
	}
	return taskID, nil
}

func (s *service) AwardTask(ctx context.Context, profileID int64, day, taskID string) (*domain.TaskReward, error) {
	bucket, err := dayBucket(day)
	if err != nil {
		return nil, err
	}
	if taskID, err = normalizeTask(taskID); err != nil {
		return nil, err
	}

	var reward *domain.TaskReward
	err = s.ledger.RunInTx(ctx, profileID, opAwardTask, func(tx repository.ProgressionTx) error {
		var err error
		reward, err = s.awardTaskTx(ctx, tx, profileID, bucket, taskID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return reward, nil
}

func (s *service) awardTaskTx(ctx context.Context, tx repository.Queries, profileID int64, day, taskID string) (*domain.TaskReward, error) {
	reward := &domain.TaskReward{}

	claimed, err := milestone.ClaimOnceTx(ctx, tx, profileID, day, domain.TaskAwardKey(taskID))
	if err != nil {
		return nil, err
	}
	if !claimed {
		return reward, nil
	}
	reward.Awarded = true

	xp, gems, err := s.grantTx(ctx, tx, profileID, domain.RewardTask, KindTask)
	if err != nil {
		return nil, err
	}
	reward.XPGained += xp
	reward.GemsGained += gems

	total, err := tx.GetCompletionCountForDay(ctx, profileID, day)
	if err != nil {
		return nil, err
	}

	var unlock *domain.Achievement
	switch total {
	case 1:
		unlock = &domain.AchievementFirstBlood
	case domain.BoardSize:
		unlock = &domain.AchievementBingo
	}
	if unlock == nil {
		return reward, nil
	}

	unlocked, err := tx.ClaimAchievement(ctx, profileID, *unlock)
	if err != nil {
		return nil, err
	}
	if !unlocked {
		return reward, nil
	}

	xp, gems, err = s.grantTx(ctx, tx, profileID, domain.Reward{XP: unlock.XP, Gems: unlock.Gems}, KindAchievement)
	if err != nil {
		return nil, err
	}
	reward.XPGained += xp
	reward.GemsGained += gems
	reward.Achievements = append(reward.Achievements, unlock.Key)

	logger.FromContext(ctx).Info(LogMsgAchievementUnlocked, "profile_id", profileID, "achievement", unlock.Key)
	return reward, nil
}

// CompleteTask marks taskID done at `at`. The combo bonus only follows a
// fresh award so toggling a task cannot farm it.
func (s *service) CompleteTask(ctx context.Context, profileID int64, day, taskID string, at time.Time) (*domain.TaskReward, error) {
	bucket, err := dayBucket(day)
	if err != nil {
		return nil, err
	}
	if taskID, err = normalizeTask(taskID); err != nil {
		return nil, err
	}
	if at.IsZero() {
		at = time.Now()
	}

	var reward *domain.TaskReward
	err = s.ledger.RunInTx(ctx, profileID, opComplete, func(tx repository.ProgressionTx) error {
		if err := tx.SetTaskCompletion(ctx, profileID, bucket, taskID, true, at); err != nil {
			return err
		}

		var err error
		reward, err = s.awardTaskTx(ctx, tx, profileID, bucket, taskID)
		if err != nil || !reward.Awarded {
			return err
		}

		done, err := tx.ListCompletions(ctx, profileID, bucket)
		if err != nil {
			return err
		}
		reward.ComboXP, err = s.talents.ApplyComboBonusTx(ctx, tx, profileID, recentCount(done, at))
		if err != nil {
			return err
		}
		reward.XPGained += reward.ComboXP
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgTaskCompleted, "profile_id", profileID, "day", bucket, "task_id", taskID,
		"awarded", reward.Awarded, "xp", reward.XPGained, "gems", reward.GemsGained, "combo_xp", reward.ComboXP)
	return reward, nil
}

// recentCount counts completions within ComboWindow up to and including at
func recentCount(done []domain.Completion, at time.Time) int {
	n := 0
	for _, c := range done {
		if !c.CompletedAt.After(at) && at.Sub(c.CompletedAt) <= ComboWindow {
			n++
		}
	}
	return n
}

// UncompleteTask clears a completion. Rewards already granted are kept.
func (s *service) UncompleteTask(ctx context.Context, profileID int64, day, taskID string) error {
	bucket, err := dayBucket(day)
	if err != nil {
		return err
	}
	if taskID, err = normalizeTask(taskID); err != nil {
		return err
	}
	return s.ledger.RunInTx(ctx, profileID, opUncomplete, func(tx repository.ProgressionTx) error {
		return tx.SetTaskCompletion(ctx, profileID, bucket, taskID, false, time.Time{})
	})
}

func (s *service) CheckBingoLines(ctx context.Context, profileID int64, day string, board []string) ([]string, error) {
	bucket, err := dayBucket(day)
	if err != nil {
		return nil, err
	}
	if len(board) != domain.BoardSize {
		return nil, fmt.Errorf("%w: board needs %d tasks, got %d", domain.ErrInvalidInput, domain.BoardSize, len(board))
	}

	var awarded []string
	err = s.ledger.RunInTx(ctx, profileID, opBingo, func(tx repository.ProgressionTx) error {
		done, err := tx.GetCompletions(ctx, profileID, bucket)
		if err != nil {
			return err
		}

		for _, line := range domain.BingoLines {
			if !lineComplete(line, board, done) {
				continue
			}
			key := domain.BingoLineKey(line)
			claimed, err := milestone.ClaimOnceTx(ctx, tx, profileID, bucket, key)
			if err != nil {
				return err
			}
			if !claimed {
				continue
			}
			if _, _, err := s.grantTx(ctx, tx, profileID, domain.RewardBingoLine, KindBingoLine); err != nil {
				return err
			}
			awarded = append(awarded, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(awarded) > 0 {
		logger.FromContext(ctx).Info(LogMsgBingoLines, "profile_id", profileID, "day", bucket, "lines", awarded)
	}
	return awarded, nil
}

func lineComplete(line []int, board []string, done map[string]bool) bool {
	for _, i := range line {
		if !done[board[i]] {
			return false
		}
	}
	return true
}
