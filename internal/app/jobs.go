package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/talkincode/qkart/internal/domain"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	_, err := a.sched.AddFunc("@daily", func() {
		a.SchedCartStatsTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedCartStatsTask logs catalog and cart volumes for ops visibility
func (a *Application) SchedCartStatsTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	var carts, items, users int64
	a.gormDB.Model(&domain.Cart{}).Count(&carts)
	a.gormDB.Model(&domain.CartItem{}).Count(&items)
	a.gormDB.Model(&domain.User{}).Count(&users)

	zap.L().Info("daily cart stats",
		zap.Int64("users", users),
		zap.Int64("carts", carts),
		zap.Int64("open_items", items))
}
