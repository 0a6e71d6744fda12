package controllers

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"label/config"
	"label/constants"
	"label/dto"
	"label/models"
	"label/response"
	"label/services"
	"label/validator"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/gin-gonic/gin"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"golang.org/x/text/unicode/norm"
)

// Chuẩn hóa chuỗi tìm kiếm: bỏ dấu, viết thường
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return input
}

// Bỏ dấu viết thường
func removeDiacritics(s string) string {
	// Chuẩn hóa chuỗi về dạng NFD (Normalization Form Decomposition)
	t := norm.NFD.String(s)
	var b strings.Builder
	for _, r := range t {
		// Loại bỏ các ký tự dấu (non-spacing marks)
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Tạo đối tượng closestmatch cho danh sách từ khóa
func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}

	if maxLen == 0 {
		return 1.0 // Nếu cả hai chuỗi đều rỗng, tương đồng là 100%
	}

	similarity := 1.0 - float64(distance)/maxLen
	return similarity
}

// Tạo danh sách thể loại duy nhất từ cơ sở dữ liệu cho closestmatch
func prepareGenreList(releases []models.Release) []string {
	seen := make(map[string]bool)
	var genres []string
	for _, release := range releases {
		for _, genre := range release.Genres {
			normalized := normalizeInput(genre)
			if normalized != "" && !seen[normalized] {
				seen[normalized] = true
				genres = append(genres, normalized)
			}
		}
	}
	if len(genres) == 0 {
		genres = append(genres, "")
	}
	return genres
}

func calculateReleaseScore(query string, release models.Release, cmGenre *closestmatch.ClosestMatch) int {
	normalizedQuery := normalizeInput(query)
	score := 0

	normalizedTitle := normalizeInput(removeDiacritics(release.Title))
	similarity := calculateSimilarity(normalizedQuery, normalizedTitle)
	if similarity > 0.7 || strings.Contains(normalizedTitle, normalizedQuery) {
		score += 20
	}

	closestGenre := cmGenre.Closest(normalizedQuery)
	for _, genre := range release.Genres {
		if normalizeInput(genre) == closestGenre {
			score += 10
			break
		}
	}

	return score
}

func filterAndScoreReleases(query string, releases []models.Release, cmGenre *closestmatch.ClosestMatch) []dto.ScoredRelease {
	var filteredReleases []dto.ScoredRelease
	scoreCh := make(chan dto.ScoredRelease, len(releases))
	var wg sync.WaitGroup

	for _, release := range releases {
		wg.Add(1)
		go func(release models.Release) {
			defer wg.Done()
			score := calculateReleaseScore(query, release, cmGenre)
			if score > 0 {
				scoreCh <- dto.ScoredRelease{
					Release: release,
					Score:   score,
				}
			}
		}(release)
	}

	go func() {
		wg.Wait()
		close(scoreCh)
	}()

	for scoredRelease := range scoreCh {
		filteredReleases = append(filteredReleases, scoredRelease)
	}

	sort.SliceStable(filteredReleases, func(i, j int) bool {
		return filteredReleases[i].Score > filteredReleases[j].Score
	})
	return filteredReleases
}

func toReleaseResponse(release models.Release) dto.ReleaseResponse {
	return dto.ReleaseResponse{
		ID:          release.ID,
		BrandID:     release.BrandID,
		BrandName:   release.Brand.Name,
		Title:       release.Title,
		Genres:      release.Genres,
		CoverURL:    release.CoverURL,
		Status:      release.Status,
		ReleaseDate: release.ReleaseDate,
		CreatedAt:   release.CreatedAt,
		UpdatedAt:   release.UpdatedAt,
	}
}

func CreateRelease(c *gin.Context) {
	var input dto.CreateReleaseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := validator.ValidateStruct(&input); err != nil {
		response.ValidationError(c, "Dữ liệu release không hợp lệ")
		return
	}

	release := models.Release{
		BrandID:     input.BrandID,
		Title:       input.Title,
		Genres:      input.Genres,
		CoverURL:    input.CoverURL,
		Status:      models.ReleaseStatusDraft,
		ReleaseDate: input.ReleaseDate,
	}

	if err := config.DB.Create(&release).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateReleaseCache(release.BrandID)
	response.Success(c, toReleaseResponse(release))
}

func GetAllReleases(c *gin.Context) {
	brandIDStr := c.Query("brandId")

	cacheKey := "releases:all"
	if brandIDStr != "" {
		cacheKey = fmt.Sprintf("releases:brand:%s", brandIDStr)
	}

	rdb, err := config.ConnectRedis()
	if err != nil {
		response.ServerError(c)
		return
	}

	var allReleases []models.Release
	if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &allReleases); err != nil || len(allReleases) == 0 {
		tx := config.DB.Model(&models.Release{}).Preload("Brand")
		if brandIDStr != "" {
			tx = tx.Where("brand_id = ?", brandIDStr)
		}
		if err := tx.Find(&allReleases).Error; err != nil {
			response.ServerError(c)
			return
		}

		if err := services.SetToRedis(config.Ctx, rdb, cacheKey, allReleases, 60*time.Minute); err != nil {
			log.Printf("Lỗi khi lưu danh sách release vào Redis: %v", err)
		}
	}

	statusFilter := c.Query("status")
	filtered := make([]models.Release, 0)
	for _, release := range allReleases {
		if statusFilter != "" {
			parsedStatus, err := strconv.Atoi(statusFilter)
			if err != nil || release.Status != parsedStatus {
				continue
			}
		}
		filtered = append(filtered, release)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	total := len(filtered)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	releasesResponse := make([]dto.ReleaseResponse, 0)
	for _, release := range filtered[start:end] {
		releasesResponse = append(releasesResponse, toReleaseResponse(release))
	}

	response.SuccessWithPagination(c, releasesResponse, page, limit, total)
}

// SearchReleases tìm kiếm mờ theo tiêu đề và thể loại, chấm điểm song song
func SearchReleases(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "Thiếu từ khóa tìm kiếm")
		return
	}

	var allReleases []models.Release
	if err := config.DB.Preload("Brand").Find(&allReleases).Error; err != nil {
		response.ServerError(c)
		return
	}

	cmGenre := createMatcher(prepareGenreList(allReleases))
	scored := filterAndScoreReleases(query, allReleases, cmGenre)

	response.Success(c, scored)
}

func GetReleaseDetail(c *gin.Context) {
	id := c.Param("id")

	var release models.Release
	if err := config.DB.Preload("Brand").Preload("Splits").
		First(&release, id).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, release)
}

func UpdateRelease(c *gin.Context) {
	var input dto.UpdateReleaseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var release models.Release
	if err := config.DB.First(&release, input.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if input.Title != "" {
		release.Title = input.Title
	}
	if input.Genres != nil {
		release.Genres = input.Genres
	}
	if input.CoverURL != "" {
		release.CoverURL = input.CoverURL
	}
	if input.ReleaseDate != "" {
		release.ReleaseDate = input.ReleaseDate
	}

	if err := config.DB.Save(&release).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateReleaseCache(release.BrandID)
	response.Success(c, toReleaseResponse(release))
}

// ChangeReleaseStatus chuyển trạng thái release theo đúng một chiều của
// vòng đời; admin được phép đặt thẳng trạng thái
func ChangeReleaseStatus(c *gin.Context) {
	var input dto.ChangeReleaseStatusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var release models.Release
	if err := config.DB.First(&release, input.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	userRole, _ := c.Get("userRole")
	if role, ok := userRole.(int); ok && role == constants.RoleAdmin {
		release.Status = input.Status
	} else {
		state := models.GetReleaseState(release.Status)
		var err error
		switch input.Status {
		case models.ReleaseStatusForSubmission:
			err = state.Submit(&release)
		case models.ReleaseStatusPending:
			err = state.Approve(&release)
		case models.ReleaseStatusLive:
			err = state.Publish(&release)
		case models.ReleaseStatusTakenDown:
			err = state.TakeDown(&release)
		default:
			response.BadRequest(c, "Trạng thái không hợp lệ")
			return
		}
		if err != nil {
			response.BadRequest(c, "Không thể chuyển trạng thái release")
			return
		}
	}

	if err := config.DB.Save(&release).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateReleaseCache(release.BrandID)
	response.Success(c, toReleaseResponse(release))
}

// Một release đổi chỉ làm cũ danh sách chung và danh sách của brand đó,
// cache của các brand khác giữ nguyên
func invalidateReleaseCache(brandID uint) {
	rdb, err := config.ConnectRedis()
	if err != nil {
		log.Printf("Lỗi kết nối Redis khi xóa cache release: %v", err)
		return
	}
	if err := services.DeleteFromRedis(config.Ctx, rdb, "releases:all"); err != nil {
		log.Printf("Lỗi xóa cache danh sách release: %v", err)
	}
	if err := services.DeleteKeysByPattern(config.Ctx, rdb,
		fmt.Sprintf("releases:brand:%d*", brandID)); err != nil {
		log.Printf("Lỗi xóa cache release của brand %d: %v", brandID, err)
	}
}
