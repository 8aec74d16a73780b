package utils

import (
	"context"
	"strings"
	"time"

	"hbs/src/db"
	"hbs/src/models"
	"hbs/src/types"
)

// Reporting reads are deliberately not transactional with concurrent writes:
// a dashboard snapshot may trail the ledger by a moment (and by the cache TTL
// at the handler). That is a property of the reporting view, not a bug.

type DashboardStats struct {
	TotalRooms       int64            `json:"totalRooms"`
	AvailableRooms   int64            `json:"availableRooms"`
	OccupiedRooms    int64            `json:"occupiedRooms"`
	ReservedRooms    int64            `json:"reservedRooms"`
	MaintenanceRooms int64            `json:"maintenanceRooms"`
	TotalBookings    int64            `json:"totalBookings"`
	PendingBookings  int64            `json:"pendingBookings"`
	BookingsByStatus map[string]int64 `json:"bookingsByStatus"`
	TotalUsers       int64            `json:"totalUsers"`
	TotalRevenue     float64          `json:"totalRevenue"`
	DailyRevenue     float64          `json:"dailyRevenue"`
	WeeklyRevenue    float64          `json:"weeklyRevenue"`
	OccupancyRate    float64          `json:"occupancyRate"`
}

type RecentBooking struct {
	UserName   string              `json:"userName"`
	RoomName   string              `json:"roomName"`
	CheckIn    time.Time           `json:"checkIn"`
	CheckOut   time.Time           `json:"checkOut"`
	Status     types.BookingStatus `json:"status"`
	TotalPrice float64             `json:"totalPrice"`
}

type RecentFeedback struct {
	UserName string `json:"userName"`
	Rating   uint   `json:"rating"`
	Comment  string `json:"comment"`
}

type DashboardPayload struct {
	Stats          DashboardStats   `json:"stats"`
	RecentBookings []RecentBooking  `json:"recentBookings"`
	RecentFeedback []RecentFeedback `json:"recentFeedback"`
}

type statusCountRow struct {
	Status string
	Count  int64
}

// OccupancyRate is (occupied+reserved)/total rooms as a percentage with one
// decimal place. Zero rooms yields zero.
func OccupancyRate(occupied, reserved, total int64) float64 {
	if total == 0 {
		return 0
	}
	return RoundTo1(float64(occupied+reserved) / float64(total) * 100)
}

func Dashboard(ctx context.Context) (*DashboardPayload, error) {
	d := db.GetDb().WithContext(ctx)

	var roomCounts []statusCountRow
	if err := d.
		Model(&models.Room{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&roomCounts).
		Error; err != nil {
		return nil, err
	}
	var bookingCounts []statusCountRow
	if err := d.
		Model(&models.Booking{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&bookingCounts).
		Error; err != nil {
		return nil, err
	}

	stats := DashboardStats{BookingsByStatus: map[string]int64{}}
	for _, rc := range roomCounts {
		stats.TotalRooms += rc.Count
		switch types.RoomStatus(rc.Status) {
		case types.ROOM_AVAILABLE:
			stats.AvailableRooms = rc.Count
		case types.ROOM_OCCUPIED:
			stats.OccupiedRooms = rc.Count
		case types.ROOM_RESERVED:
			stats.ReservedRooms = rc.Count
		case types.ROOM_MAINTENANCE:
			stats.MaintenanceRooms = rc.Count
		}
	}
	for _, bc := range bookingCounts {
		stats.TotalBookings += bc.Count
		stats.BookingsByStatus[bc.Status] = bc.Count
		if types.BookingStatus(bc.Status) == types.BOOKING_PENDING {
			stats.PendingBookings = bc.Count
		}
	}
	stats.OccupancyRate = OccupancyRate(stats.OccupiedRooms, stats.ReservedRooms, stats.TotalRooms)

	if err := d.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	revenueSince := func(since *time.Time) (float64, error) {
		var total float64
		q := d.
			Model(&models.Booking{}).
			Select("coalesce(sum(total_price), 0)").
			Where("status IN ?", types.RevenueEligibleStatuses)
		if since != nil {
			q = q.Where("created_at >= ?", *since)
		}
		err := q.Scan(&total).Error
		return total, err
	}
	var err error
	if stats.TotalRevenue, err = revenueSince(nil); err != nil {
		return nil, err
	}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if stats.DailyRevenue, err = revenueSince(&midnight); err != nil {
		return nil, err
	}
	weekAgo := now.AddDate(0, 0, -7)
	if stats.WeeklyRevenue, err = revenueSince(&weekAgo); err != nil {
		return nil, err
	}

	var bookings []models.Booking
	if err := d.
		Model(&models.Booking{}).
		Preload("User").
		Preload("Room").
		Order("created_at DESC").
		Limit(10).
		Find(&bookings).
		Error; err != nil {
		return nil, err
	}
	recentBookings := make([]RecentBooking, 0, len(bookings))
	for _, b := range bookings {
		rb := RecentBooking{
			UserName:   "Unknown",
			RoomName:   "Unknown",
			CheckIn:    b.CheckIn,
			CheckOut:   b.CheckOut,
			Status:     b.Status,
			TotalPrice: b.TotalPrice,
		}
		if b.User != nil {
			rb.UserName = b.User.Name
		}
		if b.Room != nil {
			rb.RoomName = b.Room.Name
		}
		recentBookings = append(recentBookings, rb)
	}

	var feedbacks []models.Feedback
	if err := d.
		Model(&models.Feedback{}).
		Preload("User").
		Order("created_at DESC").
		Limit(5).
		Find(&feedbacks).
		Error; err != nil {
		return nil, err
	}
	recentFeedback := make([]RecentFeedback, 0, len(feedbacks))
	for _, f := range feedbacks {
		rf := RecentFeedback{UserName: "Unknown", Rating: f.Rating, Comment: f.Comment}
		if f.User != nil {
			rf.UserName = f.User.Name
		}
		recentFeedback = append(recentFeedback, rf)
	}

	return &DashboardPayload{
		Stats:          stats,
		RecentBookings: recentBookings,
		RecentFeedback: recentFeedback,
	}, nil
}

type RevenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type RoomTypePerformance struct {
	Type      types.RoomType `json:"type"`
	Revenue   float64        `json:"revenue"`
	Bookings  int64          `json:"bookings"`
	Occupancy float64        `json:"occupancy"`
}

type Reports struct {
	RevenueData         []RevenuePoint        `json:"revenueData"`
	RoomTypePerformance []RoomTypePerformance `json:"roomTypePerformance"`
	StatusDistribution  map[string]int64      `json:"statusDistribution"`
	TotalRevenue        float64               `json:"totalRevenue"`
	TotalBookings       int64                 `json:"totalBookings"`
	AverageBookingValue float64               `json:"averageBookingValue"`
}

// PeriodStart maps a report period to its window start. Unknown periods fall
// back to yearly.
func PeriodStart(period string, now time.Time) time.Time {
	switch strings.ToLower(period) {
	case "daily":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "weekly":
		return now.AddDate(0, 0, -7)
	case "monthly":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
}

// AverageBookingValue never divides by zero.
func AverageBookingValue(totalRevenue float64, totalBookings int64) float64 {
	if totalBookings == 0 {
		return 0
	}
	return totalRevenue / float64(totalBookings)
}

// BuildReports aggregates revenue-eligible bookings created inside the
// period window. All grouping happens database-side.
func BuildReports(ctx context.Context, period string) (*Reports, error) {
	d := db.GetDb().WithContext(ctx)
	start := PeriodStart(period, time.Now())

	var revenueData []RevenuePoint
	if err := d.
		Model(&models.Booking{}).
		Select("to_char(created_at, 'YYYY-MM-DD') as date, sum(total_price) as revenue").
		Where("created_at >= ? AND status IN ?", start, types.RevenueEligibleStatuses).
		Group("date").
		Order("date asc").
		Find(&revenueData).
		Error; err != nil {
		return nil, err
	}

	var typeRows []RoomTypePerformance
	if err := d.
		Model(&models.Booking{}).
		Select("rooms.type as type, sum(bookings.total_price) as revenue, count(bookings.id) as bookings").
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Where("bookings.created_at >= ? AND bookings.status IN ?", start, types.RevenueEligibleStatuses).
		Group("rooms.type").
		Order("revenue desc").
		Find(&typeRows).
		Error; err != nil {
		return nil, err
	}

	var distRows []statusCountRow
	if err := d.
		Model(&models.Booking{}).
		Select("status, count(*) as count").
		Where("created_at >= ?", start).
		Group("status").
		Find(&distRows).
		Error; err != nil {
		return nil, err
	}

	reports := &Reports{
		RevenueData:         revenueData,
		RoomTypePerformance: typeRows,
		StatusDistribution:  map[string]int64{},
	}
	for _, p := range revenueData {
		reports.TotalRevenue += p.Revenue
	}
	for _, r := range distRows {
		reports.StatusDistribution[r.Status] = r.Count
	}
	for _, t := range typeRows {
		reports.TotalBookings += t.Bookings
	}
	for i := range reports.RoomTypePerformance {
		if reports.TotalBookings > 0 {
			pct := float64(reports.RoomTypePerformance[i].Bookings) / float64(reports.TotalBookings) * 100
			reports.RoomTypePerformance[i].Occupancy = RoundTo1(pct)
		}
	}
	reports.AverageBookingValue = AverageBookingValue(reports.TotalRevenue, reports.TotalBookings)
	return reports, nil
}

type ServiceRevenue struct {
	Service  string  `json:"service"`
	Revenue  float64 `json:"revenue"`
	Bookings int64   `json:"bookings"`
}

type RevenueServicesSummary struct {
	TotalSecondaryRevenue float64        `json:"totalSecondaryRevenue"`
	MostProfitableService ServiceRevenue `json:"mostProfitableService"`
	TotalServiceBookings  int64          `json:"totalServiceBookings"`
}

// secondaryServices are keyword-matched against special requests; the unit
// prices mirror the hotel's ancillary price list.
var secondaryServices = []struct {
	Name    string
	Keyword string
	Price   float64
}{
	{"Room Service", "room service", 50},
	{"Spa & Wellness", "spa", 100},
	{"Airport Transfer", "transfer", 75},
	{"Conference Room", "conference", 200},
}

func RevenueServices(ctx context.Context) ([]ServiceRevenue, *RevenueServicesSummary, error) {
	d := db.GetDb().WithContext(ctx)
	services := make([]ServiceRevenue, 0, len(secondaryServices))
	summary := &RevenueServicesSummary{MostProfitableService: ServiceRevenue{Service: "None"}}
	for _, svc := range secondaryServices {
		var count int64
		if err := d.
			Model(&models.Booking{}).
			Where("special_requests ILIKE ?", "%"+svc.Keyword+"%").
			Count(&count).
			Error; err != nil {
			return nil, nil, err
		}
		if count == 0 {
			continue
		}
		entry := ServiceRevenue{Service: svc.Name, Revenue: float64(count) * svc.Price, Bookings: count}
		services = append(services, entry)
		summary.TotalSecondaryRevenue += entry.Revenue
		summary.TotalServiceBookings += entry.Bookings
		if entry.Revenue > summary.MostProfitableService.Revenue {
			summary.MostProfitableService = entry
		}
	}
	return services, summary, nil
}

type CategoryStat struct {
	Category      types.FeedbackCategory `json:"category"`
	Count         int64                  `json:"count"`
	AverageRating float64                `json:"averageRating"`
}

type FeedbackStats struct {
	TotalReviews       int64          `json:"totalReviews"`
	AverageRating      float64        `json:"averageRating"`
	RatingDistribution map[uint]int64 `json:"ratingDistribution"`
	Categories         []CategoryStat `json:"categories"`
}

// GetFeedbackStats aggregates Approved feedback only. Average rating is
// rounded to one decimal; the distribution always carries keys 1..5.
func GetFeedbackStats(ctx context.Context) (*FeedbackStats, error) {
	d := db.GetDb().WithContext(ctx)

	var totals struct {
		Total int64
		Avg   float64
	}
	if err := d.
		Model(&models.Feedback{}).
		Select("count(*) as total, coalesce(avg(rating), 0) as avg").
		Where(&models.Feedback{Status: types.FEEDBACK_APPROVED}).
		Scan(&totals).
		Error; err != nil {
		return nil, err
	}

	type ratingRow struct {
		Rating uint
		Count  int64
	}
	var ratings []ratingRow
	if err := d.
		Model(&models.Feedback{}).
		Select("rating, count(*) as count").
		Where(&models.Feedback{Status: types.FEEDBACK_APPROVED}).
		Group("rating").
		Find(&ratings).
		Error; err != nil {
		return nil, err
	}

	var categories []CategoryStat
	if err := d.
		Model(&models.Feedback{}).
		Select("category, count(*) as count, coalesce(avg(rating), 0) as average_rating").
		Where(&models.Feedback{Status: types.FEEDBACK_APPROVED}).
		Group("category").
		Find(&categories).
		Error; err != nil {
		return nil, err
	}
	for i := range categories {
		categories[i].AverageRating = RoundTo1(categories[i].AverageRating)
	}

	stats := &FeedbackStats{
		TotalReviews:       totals.Total,
		AverageRating:      RoundTo1(totals.Avg),
		RatingDistribution: map[uint]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
		Categories:         categories,
	}
	for _, r := range ratings {
		stats.RatingDistribution[r.Rating] = r.Count
	}
	return stats, nil
}
