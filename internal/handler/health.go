package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports the two dependencies an upload actually needs: postgres is
// required (no parse can commit without it), redis only carries the
// notification queue, so its state is reported but postgres alone decides
// the status code.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		pg := "up"
		if !postgresUp(ctx, db) {
			pg = "down"
		}

		queue := "up"
		if rdb == nil || rdb.Ping(ctx).Err() != nil {
			queue = "down"
		}

		status := http.StatusOK
		overall := "ok"
		switch {
		case pg == "down":
			status = http.StatusServiceUnavailable
			overall = "down"
		case queue == "down":
			overall = "degraded"
		}

		c.JSON(status, gin.H{
			"status":   overall,
			"postgres": pg,
			"queue":    queue,
		})
	}
}

func postgresUp(ctx context.Context, db *gorm.DB) bool {
	if db == nil {
		return false
	}
	sqlDB, err := db.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}
