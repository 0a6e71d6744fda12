package jobs

import (
	"context"
	"log"
	"time"

	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// TicketSweeper định nghĩa interface cho việc quét đơn treo
type TicketSweeper interface {
	SweepAll(ctx context.Context, cutoff time.Time) (verified int, canceled int, err error)
}

// DigestBuilder định nghĩa interface dựng bản tin tổng hợp hằng ngày
type DigestBuilder interface {
	BuildDailyDigest() (string, error)
}

var ticketSweeper TicketSweeper
var digestBuilder DigestBuilder

// SetTicketSweeper thiết lập implementation cho TicketSweeper
func SetTicketSweeper(sweeper TicketSweeper) {
	ticketSweeper = sweeper
}

// SetDigestBuilder thiết lập implementation cho DigestBuilder
func SetDigestBuilder(builder DigestBuilder) {
	digestBuilder = builder
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron, m *melody.Melody) error {
	// Quét đơn treo mỗi 30 phút, vé New quá 24h chưa thanh toán
	_, err := c.AddFunc("*/30 * * * *", func() {
		if ticketSweeper == nil {
			log.Printf("Lỗi: TicketSweeper chưa được thiết lập")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Minute)
		defer cancel()

		cutoff := time.Now().Add(-24 * time.Hour)
		verified, canceled, err := ticketSweeper.SweepAll(ctx, cutoff)
		if err != nil {
			log.Printf("Lỗi khi quét đơn treo: %v", err)
			return
		}
		log.Printf("Quét đơn treo xong: %d vé xác nhận, %d vé hủy", verified, canceled)
	})
	if err != nil {
		return err
	}

	// Bản tin tổng hợp lúc 0h mỗi ngày, chỉ broadcast cho dashboard
	_, err = c.AddFunc("0 0 * * *", func() {
		if digestBuilder == nil {
			return
		}
		digest, err := digestBuilder.BuildDailyDigest()
		if err != nil {
			log.Printf("Lỗi khi dựng bản tin tổng hợp: %v", err)
			return
		}
		if err := m.Broadcast([]byte(digest)); err != nil {
			log.Printf("Lỗi khi broadcast bản tin: %v", err)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
