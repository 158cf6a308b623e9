package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/dapurnusa/resto_backend/config"
	"gorm.io/gorm"
)

// AcquirePostingLock serializes posting across instances using MySQL advisory
// locks. GET_LOCK is connection-scoped, so this must be called on the same
// *gorm.DB transaction that will do the posting.
func AcquirePostingLock(tx *gorm.DB, name string) error {
	lockName := fmt.Sprintf("posting:%s", name)
	var ok int
	if err := tx.Raw("SELECT GET_LOCK(?, 30)", lockName).Scan(&ok).Error; err != nil {
		return err
	}
	if ok != 1 {
		return fmt.Errorf("could not acquire posting lock %s", lockName)
	}
	return nil
}

func ReleasePostingLock(tx *gorm.DB, name string) {
	lockName := fmt.Sprintf("posting:%s", name)
	var _ok int
	_ = tx.Raw("SELECT RELEASE_LOCK(?)", lockName).Scan(&_ok).Error
}

// obtainRedisPostingLock is a best-effort optimization: it keeps concurrent
// posters from piling up on the database lock. Reliability must not depend on
// Redis; the MySQL advisory lock above is the authority.
func obtainRedisPostingLock(ctx context.Context, name string) *redislock.Lock {
	locker := config.GetRedisLock()
	if locker == nil {
		return nil
	}
	lock, err := locker.Obtain(ctx, "posting:"+name, 30*time.Second, nil)
	if err != nil {
		return nil
	}
	return lock
}

func releaseRedisPostingLock(ctx context.Context, lock *redislock.Lock) {
	if lock == nil {
		return
	}
	_ = lock.Release(ctx)
}
