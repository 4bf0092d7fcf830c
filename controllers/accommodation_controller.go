package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"homestay/config"
	"homestay/constants"
	"homestay/dto"
	"homestay/models"
	"homestay/response"
	"homestay/services"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/gin-gonic/gin"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

type scoredAccommodation struct {
	Accommodation models.Accommodation
	Score         int
}

func convertToAccommodationResponse(acc models.Accommodation) dto.AccommodationResponse {
	return dto.AccommodationResponse{
		ID:               acc.ID,
		Type:             acc.Type,
		Name:             acc.Name,
		Address:          acc.Address,
		Avatar:           acc.Avatar,
		Img:              acc.Img,
		ShortDescription: acc.ShortDescription,
		Description:      acc.Description,
		Status:           acc.Status,
		User: dto.UserInfo{
			ID:          acc.User.ID,
			Name:        acc.User.Name,
			Email:       acc.User.Email,
			PhoneNumber: acc.User.PhoneNumber,
		},
		Amenities:    acc.Amenities,
		People:       acc.People,
		Price:        acc.Price,
		AvgStar:      acc.AvgStar,
		NumBed:       acc.NumBed,
		NumToilet:    acc.NumToilet,
		TimeCheckIn:  acc.TimeCheckIn,
		TimeCheckOut: acc.TimeCheckOut,
		Province:     acc.Province,
		District:     acc.District,
		Ward:         acc.Ward,
		Longitude:    acc.Longitude,
		Latitude:     acc.Latitude,
	}
}

// reservedAccommodationIDs trả về tập chỗ ở đã có đặt phòng pending/confirmed
// chồng lấn với khoảng [fromDate, toDate)
func reservedAccommodationIDs(fromDate, toDate string) (map[uint]bool, error) {
	reserved := make(map[uint]bool)
	if fromDate == "" || toDate == "" {
		return reserved, nil
	}

	var ids []uint
	if err := config.DB.Model(&models.Reservation{}).
		Where("status IN ?", []int{constants.ReservationStatusPending, constants.ReservationStatusConfirmed}).
		Where("check_in_date < ? AND check_out_date > ?", toDate, fromDate).
		Pluck("accommodation_id", &ids).Error; err != nil {
		return nil, err
	}

	for _, id := range ids {
		reserved[id] = true
	}
	return reserved, nil
}

func GetAllAccommodations(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c)
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	currentUserID, currentUserRole, err := services.GetUserIDFromToken(tokenString)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	// Cache key theo vai trò: chủ nhà chỉ thấy chỗ ở của mình
	var cacheKey string
	if currentUserRole == 2 {
		cacheKey = fmt.Sprintf("accommodations:host:%d", currentUserID)
	} else {
		cacheKey = "accommodations:all"
	}

	rdb, err := config.ConnectRedis()
	if err != nil {
		response.ServerError(c)
		return
	}

	var allAccommodations []models.Accommodation

	if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &allAccommodations); err != nil || len(allAccommodations) == 0 {
		tx := config.DB.Model(&models.Accommodation{}).
			Preload("Reviews").
			Preload("User")
		if currentUserRole == 2 {
			tx = tx.Where("user_id = ?", currentUserID)
		}

		if err := tx.Find(&allAccommodations).Error; err != nil {
			response.ServerError(c)
			return
		}

		if err := services.SetToRedis(config.Ctx, rdb, cacheKey, allAccommodations, 60*time.Minute); err != nil {
			log.Printf("Lỗi khi lưu danh sách chỗ ở vào Redis: %v", err)
		}
	}

	typeFilter := c.Query("type")
	statusFilter := c.Query("status")
	nameFilter := c.Query("name")
	numBedFilter := c.Query("numBed")
	numToiletFilter := c.Query("numToilet")
	peopleFilter := c.Query("people")
	provinceFilter := c.Query("province")

	filteredAccommodations := make([]models.Accommodation, 0)
	for _, acc := range allAccommodations {
		if !isMatch(acc, typeFilter, nameFilter, statusFilter, provinceFilter, "", numBedFilter, numToiletFilter, peopleFilter) {
			continue
		}
		filteredAccommodations = append(filteredAccommodations, acc)
	}
	total := len(filteredAccommodations)

	// Xếp theo update mới nhất
	sort.Slice(filteredAccommodations, func(i, j int) bool {
		return filteredAccommodations[i].UpdatedAt.After(filteredAccommodations[j].UpdatedAt)
	})

	page := 0
	limit := 10
	if pageStr := c.Query("page"); pageStr != "" {
		if parsedPage, err := strconv.Atoi(pageStr); err == nil && parsedPage >= 0 {
			page = parsedPage
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	start := page * limit
	end := start + limit
	if start >= total {
		filteredAccommodations = []models.Accommodation{}
	} else if end > total {
		filteredAccommodations = filteredAccommodations[start:]
	} else {
		filteredAccommodations = filteredAccommodations[start:end]
	}

	accommodationsResponse := make([]dto.AccommodationResponse, 0, len(filteredAccommodations))
	for _, acc := range filteredAccommodations {
		accommodationsResponse = append(accommodationsResponse, convertToAccommodationResponse(acc))
	}

	response.SuccessWithPagination(c, accommodationsResponse, page, limit, total)
}

// Hàm chuẩn hóa chuỗi
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return input
}

// Tạo đối tượng closestmatch cho danh sách từ khóa
func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// Tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/maxLen
}

func extractRatingFromQuery(query string) int {
	// Bắt số nguyên đi kèm từ "sao"
	re := regexp.MustCompile(`(\d+)\s*sao`)
	match := re.FindStringSubmatch(query)
	if len(match) < 2 {
		return -1
	}

	ratingInt, err := strconv.Atoi(match[1])
	if err != nil {
		return -1
	}
	return ratingInt
}

// Tách loại chỗ ở cùng xếp hạng sao từ query
func parseAccommodationType(query string) (int, int) {
	apartmentKeywords := []string{"căn hộ", "can ho", "apartment", "chung cư"}
	houseKeywords := []string{"nhà", "nhà nguyên căn", "nha nguyen can", "house"}
	villaKeywords := []string{"villa", "biệt thự", "biet thu"}
	homestayKeywords := []string{"homestay", "home stay"}

	normalizedQuery := normalizeInput(query)
	rating := extractRatingFromQuery(normalizedQuery)

	apartmentMatcher := createMatcher(apartmentKeywords)
	houseMatcher := createMatcher(houseKeywords)
	villaMatcher := createMatcher(villaKeywords)
	homestayMatcher := createMatcher(homestayKeywords)

	if match := apartmentMatcher.Closest(normalizedQuery); match != "" && strings.Contains(normalizedQuery, match) {
		return 0, rating
	}
	if match := houseMatcher.Closest(normalizedQuery); match != "" && strings.Contains(normalizedQuery, match) {
		return 1, rating
	}
	if match := villaMatcher.Closest(normalizedQuery); match != "" && strings.Contains(normalizedQuery, match) {
		return 2, rating
	}
	if match := homestayMatcher.Closest(normalizedQuery); match != "" && strings.Contains(normalizedQuery, match) {
		return 3, rating
	}

	return -1, rating
}

// Tạo danh sách giá trị duy nhất cho closestmatch
func prepareUniqueList(accommodations []models.Accommodation, field string) []string {
	uniqueValues := make(map[string]bool)

	for _, acc := range accommodations {
		var value string
		switch field {
		case "province":
			value = acc.Province
		case "ward":
			value = acc.Ward
		}
		if value != "" {
			uniqueValues[normalizeInput(value)] = true
		}
	}

	uniqueList := make([]string, 0, len(uniqueValues))
	for val := range uniqueValues {
		uniqueList = append(uniqueList, val)
	}
	return uniqueList
}

// Tính điểm phù hợp cho một chỗ ở
func calculateScore(query string, acc models.Accommodation, cmProvince, cmWard *closestmatch.ClosestMatch) int {
	normalizedQuery := normalizeInput(query)
	accType, rating := parseAccommodationType(normalizedQuery)
	score := 0

	if accType != -1 && accType == acc.Type {
		score += 20
	}
	if rating != -1 && int(acc.AvgStar) == rating {
		score += 15
	}
	if strings.Contains(normalizeInput(acc.Name), normalizedQuery) {
		score += 10
	}
	score += calculateLocationScore(normalizedQuery, acc, cmProvince, cmWard)
	score += calculateAmenityScore(normalizedQuery, acc.Amenities)

	return score
}

func calculateLocationScore(query string, acc models.Accommodation, cmProvince, cmWard *closestmatch.ClosestMatch) int {
	score := 0
	if cmProvince.Closest(query) == normalizeInput(acc.Province) {
		score += 13
	}
	if cmWard.Closest(query) == normalizeInput(acc.Ward) {
		score += 1
	}
	return score
}

func calculateAmenityScore(query string, amenitiesRaw json.RawMessage) int {
	var amenities []string
	if len(amenitiesRaw) == 0 {
		return 0
	}
	if err := json.Unmarshal(amenitiesRaw, &amenities); err != nil {
		return 0
	}

	maxAmenityScore := 12
	amenityScore := 0

	for _, amenity := range amenities {
		normalizedAmenity := normalizeInput(amenity)
		similarity := calculateSimilarity(query, normalizedAmenity)
		if similarity > 0.7 || strings.Contains(query, normalizedAmenity) {
			amenityScore += 4
			if amenityScore >= maxAmenityScore {
				break
			}
		}
	}
	return amenityScore
}

func filterAndScoreAccommodations(
	query string,
	accommodations []models.Accommodation,
	cmProvince, cmWard *closestmatch.ClosestMatch,
) []scoredAccommodation {
	var filteredAccommodations []scoredAccommodation
	scoreCh := make(chan scoredAccommodation, len(accommodations))
	var wg sync.WaitGroup

	for _, acc := range accommodations {
		wg.Add(1)
		go func(acc models.Accommodation) {
			defer wg.Done()
			score := calculateScore(query, acc, cmProvince, cmWard)
			if score > 0 {
				scoreCh <- scoredAccommodation{
					Accommodation: acc,
					Score:         score,
				}
			}
		}(acc)
	}

	go func() {
		wg.Wait()
		close(scoreCh)
	}()

	for scoredAcc := range scoreCh {
		filteredAccommodations = append(filteredAccommodations, scoredAcc)
	}

	sort.SliceStable(filteredAccommodations, func(i, j int) bool {
		return filteredAccommodations[i].Score > filteredAccommodations[j].Score
	})
	return filteredAccommodations
}

func loadAccommodationsFromDB(allAccommodations *[]models.Accommodation) error {
	return config.DB.Model(&models.Accommodation{}).
		Preload("Reviews").
		Preload("User").
		Find(allAccommodations).Error
}

func isMatch(acc models.Accommodation, typeFilter, nameFilter, statusFilter, provinceFilter, districtFilter, numBedFilter, numToiletFilter, peopleFilter string) bool {
	if typeFilter != "" {
		parsedTypeFilter, err := strconv.Atoi(typeFilter)
		if err == nil && acc.Type != parsedTypeFilter {
			return false
		}
	}

	if nameFilter != "" {
		decodedNameFilter, _ := url.QueryUnescape(nameFilter)
		if !strings.Contains(strings.ToLower(acc.Name), strings.ToLower(decodedNameFilter)) {
			return false
		}
	}

	if statusFilter != "" {
		parsedStatusFilter, err := strconv.Atoi(statusFilter)
		if err == nil && acc.Status != parsedStatusFilter {
			return false
		}
	}

	if provinceFilter != "" {
		decodedProvinceFilter, _ := url.QueryUnescape(provinceFilter)
		if !strings.Contains(strings.ToLower(acc.Province), strings.ToLower(decodedProvinceFilter)) {
			return false
		}
	}

	if districtFilter != "" {
		decodedDistrictFilter, _ := url.QueryUnescape(districtFilter)
		if !strings.Contains(strings.ToLower(acc.District), strings.ToLower(decodedDistrictFilter)) {
			return false
		}
	}

	if numBedFilter != "" {
		numBed, _ := strconv.Atoi(numBedFilter)
		if acc.NumBed != numBed {
			return false
		}
	}

	if numToiletFilter != "" {
		numToilet, _ := strconv.Atoi(numToiletFilter)
		if acc.NumToilet != numToilet {
			return false
		}
	}

	if peopleFilter != "" {
		people, _ := strconv.Atoi(peopleFilter)
		if acc.People != people {
			return false
		}
	}

	return true
}

// SearchAccommodations là API công khai: lọc theo thuộc tính, loại trừ chỗ ở
// đã kín trong khoảng ngày yêu cầu, và xếp hạng gần đúng theo từ khóa tìm kiếm
func SearchAccommodations(c *gin.Context) {
	typeFilter := c.Query("type")
	provinceFilter := c.Query("province")
	districtFilter := c.Query("district")
	nameFilter := c.Query("name")
	numBedFilter := c.Query("numBed")
	numToiletFilter := c.Query("numToilet")
	peopleFilter := c.Query("people")
	searchQuery := c.Query("search")

	fromDateStr := c.Query("fromDate")
	toDateStr := c.Query("toDate")

	// Có session thì gộp với bộ lọc của lần tìm trước
	if sessionKey := c.GetString("sessionId"); sessionKey != "" {
		filters := &dto.SearchFilters{
			Type:      typeFilter,
			Province:  provinceFilter,
			District:  districtFilter,
			Name:      nameFilter,
			NumBed:    numBedFilter,
			NumToilet: numToiletFilter,
			People:    peopleFilter,
			Search:    searchQuery,
			FromDate:  fromDateStr,
			ToDate:    toDateStr,
		}
		if rdb, err := config.ConnectRedis(); err == nil {
			if oldFilters, err := services.GetLastFilters(config.Ctx, rdb, sessionKey); err == nil {
				filters = services.MergeFilters(oldFilters, filters)
			}
			if err := services.SaveLastFilters(config.Ctx, rdb, sessionKey, filters); err != nil {
				log.Printf("Lỗi khi lưu bộ lọc tìm kiếm: %v", err)
			}
		}
		typeFilter = filters.Type
		provinceFilter = filters.Province
		districtFilter = filters.District
		nameFilter = filters.Name
		numBedFilter = filters.NumBed
		numToiletFilter = filters.NumToilet
		peopleFilter = filters.People
		searchQuery = filters.Search
		fromDateStr = filters.FromDate
		toDateStr = filters.ToDate
	}

	page := 0
	limit := 10
	if pageStr := c.Query("page"); pageStr != "" {
		if parsedPage, err := strconv.Atoi(pageStr); err == nil && parsedPage >= 0 {
			page = parsedPage
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	if fromDateStr != "" {
		if _, err := time.Parse("2006-01-02", fromDateStr); err != nil {
			response.BadRequest(c, "Dữ liệu fromDate không hợp lệ")
			return
		}
	}
	if toDateStr != "" {
		if _, err := time.Parse("2006-01-02", toDateStr); err != nil {
			response.BadRequest(c, "Dữ liệu toDate không hợp lệ")
			return
		}
	}

	reserved, err := reservedAccommodationIDs(fromDateStr, toDateStr)
	if err != nil {
		response.ServerError(c)
		return
	}

	cacheKey := "accommodations:all"
	rdb, err := config.ConnectRedis()
	if err != nil {
		response.ServerError(c)
		return
	}

	var allAccommodations []models.Accommodation

	if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &allAccommodations); err != nil || len(allAccommodations) == 0 {
		if err := loadAccommodationsFromDB(&allAccommodations); err != nil {
			response.ServerError(c)
			return
		}

		if err := services.SetToRedis(config.Ctx, rdb, cacheKey, allAccommodations, 60*time.Minute); err != nil {
			log.Printf("Lỗi khi lưu danh sách chỗ ở vào Redis: %v", err)
		}
	}

	cmProvince := createMatcher(prepareUniqueList(allAccommodations, "province"))
	cmWard := createMatcher(prepareUniqueList(allAccommodations, "ward"))

	filteredAccommodations := make([]models.Accommodation, 0)
	for _, acc := range allAccommodations {
		// Chỉ hiện chỗ ở đang hoạt động và còn trống
		if acc.Status != 1 {
			continue
		}
		if reserved[acc.ID] {
			continue
		}
		if !isMatch(acc, typeFilter, nameFilter, "", provinceFilter, districtFilter, numBedFilter, numToiletFilter, peopleFilter) {
			continue
		}
		filteredAccommodations = append(filteredAccommodations, acc)
	}

	if searchQuery != "" {
		scoredAccommodations := filterAndScoreAccommodations(searchQuery, filteredAccommodations, cmProvince, cmWard)
		filteredAccommodations = []models.Accommodation{}
		for _, scoredAcc := range scoredAccommodations {
			filteredAccommodations = append(filteredAccommodations, scoredAcc.Accommodation)
		}
	} else {
		// Không có từ khóa thì xếp theo đánh giá tốt nhất
		sort.Slice(filteredAccommodations, func(i, j int) bool {
			return filteredAccommodations[i].AvgStar > filteredAccommodations[j].AvgStar
		})
	}

	total := len(filteredAccommodations)

	start := page * limit
	end := start + limit
	if start >= total {
		filteredAccommodations = []models.Accommodation{}
	} else if end > total {
		filteredAccommodations = filteredAccommodations[start:]
	} else {
		filteredAccommodations = filteredAccommodations[start:end]
	}

	accommodationsResponse := make([]dto.AccommodationResponse, 0, len(filteredAccommodations))
	for _, acc := range filteredAccommodations {
		accommodationsResponse = append(accommodationsResponse, convertToAccommodationResponse(acc))
	}

	response.SuccessWithPagination(c, accommodationsResponse, page, limit, total)
}

func CreateAccommodation(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c)
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	currentUserID, currentUserRole, err := services.GetUserIDFromToken(tokenString)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	var user models.User
	if err := config.DB.First(&user, currentUserID).Error; err != nil {
		response.BadRequest(c, "Người dùng không tồn tại")
		return
	}

	var request dto.CreateAccommodationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu đầu vào không hợp lệ")
		return
	}

	newAccommodation := models.Accommodation{
		Type:             request.Type,
		UserID:           currentUserID,
		Name:             request.Name,
		Address:          request.Address,
		Avatar:           request.Avatar,
		Img:              request.Img,
		ShortDescription: request.ShortDescription,
		Description:      request.Description,
		Status:           2, // chờ duyệt
		Amenities:        request.Amenities,
		People:           request.People,
		Price:            request.Price,
		NumBed:           request.NumBed,
		NumToilet:        request.NumToilet,
		TimeCheckIn:      request.TimeCheckIn,
		TimeCheckOut:     request.TimeCheckOut,
		Province:         request.Province,
		District:         request.District,
		Ward:             request.Ward,
	}

	if err := newAccommodation.ValidateType(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	latitude, longitude, err := services.GetCoordinatesFromAddress(
		request.Address,
		request.District,
		request.Province,
		request.Ward,
		os.Getenv("GOONG_API_KEY"),
	)
	if err != nil {
		log.Printf("Không thể mã hóa địa chỉ: %v", err)
	} else {
		// Tọa độ trùng nghĩa là địa chỉ đã được đăng ký
		var existingAccommodation models.Accommodation
		if err := config.DB.Where("longitude = ? AND latitude = ?", longitude, latitude).First(&existingAccommodation).Error; err == nil {
			response.Conflict(c, "Địa chỉ này đã được sử dụng, vui lòng nhập địa chỉ khác")
			return
		}
		newAccommodation.Longitude = longitude
		newAccommodation.Latitude = latitude
	}

	if err := config.DB.Create(&newAccommodation).Error; err != nil {
		response.ServerError(c)
		return
	}

	// Gắn chỗ ở mới vào danh sách quản lý của chủ nhà
	user.AccommodationIDs = append(user.AccommodationIDs, int64(newAccommodation.ID))
	if err := config.DB.Model(&user).Update("accommodation_ids", user.AccommodationIDs).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateAccommodationCaches(currentUserID, currentUserRole)

	newAccommodation.User = user
	response.Success(c, convertToAccommodationResponse(newAccommodation))
}

func GetAccommodationDetail(c *gin.Context) {
	accommodationId := c.Param("id")

	rdb, redisErr := config.ConnectRedis()
	if redisErr != nil {
		response.ServerError(c)
		return
	}

	cacheKey := fmt.Sprintf("accommodations:detail:%s", accommodationId)

	var cached dto.AccommodationResponse
	if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &cached); err == nil && cached.ID != 0 {
		response.Success(c, cached)
		return
	}

	var accommodation models.Accommodation
	if err := config.DB.Preload("Reviews").
		Preload("Reviews.User").
		Preload("User").
		First(&accommodation, accommodationId).Error; err != nil {
		response.NotFound(c)
		return
	}

	resp := convertToAccommodationResponse(accommodation)

	if err := services.SetToRedis(config.Ctx, rdb, cacheKey, resp, 30*time.Minute); err != nil {
		log.Printf("Lỗi khi lưu chi tiết chỗ ở vào Redis: %v", err)
	}

	response.Success(c, resp)
}

func UpdateAccommodation(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c)
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	currentUserID, currentUserRole, err := services.GetUserIDFromToken(tokenString)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	var request dto.UpdateAccommodationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu đầu vào không hợp lệ")
		return
	}

	var accommodation models.Accommodation
	if err := config.DB.Preload("User").First(&accommodation, request.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	// Chủ nhà chỉ được sửa chỗ ở của mình
	if currentUserRole == 2 && accommodation.UserID != currentUserID {
		response.Forbidden(c)
		return
	}

	if request.Name != "" {
		accommodation.Name = request.Name
	}
	if request.Address != "" {
		accommodation.Address = request.Address
	}
	if request.Avatar != "" {
		accommodation.Avatar = request.Avatar
	}
	if request.ShortDescription != "" {
		accommodation.ShortDescription = request.ShortDescription
	}
	if request.Description != "" {
		accommodation.Description = request.Description
	}
	if len(request.Img) > 0 {
		accommodation.Img = request.Img
	}
	if len(request.Amenities) > 0 {
		accommodation.Amenities = request.Amenities
	}
	if request.People != 0 {
		accommodation.People = request.People
	}
	if request.NumBed != 0 {
		accommodation.NumBed = request.NumBed
	}
	if request.NumToilet != 0 {
		accommodation.NumToilet = request.NumToilet
	}
	if request.TimeCheckIn != "" {
		accommodation.TimeCheckIn = request.TimeCheckIn
	}
	if request.TimeCheckOut != "" {
		accommodation.TimeCheckOut = request.TimeCheckOut
	}
	if request.Province != "" {
		accommodation.Province = request.Province
	}
	if request.District != "" {
		accommodation.District = request.District
	}
	if request.Ward != "" {
		accommodation.Ward = request.Ward
	}

	if request.Address != "" {
		latitude, longitude, err := services.GetCoordinatesFromAddress(
			request.Address,
			accommodation.District,
			accommodation.Province,
			accommodation.Ward,
			os.Getenv("GOONG_API_KEY"),
		)
		if err == nil && longitude != 0 && latitude != 0 {
			accommodation.Longitude = longitude
			accommodation.Latitude = latitude
		}
	}

	if err := config.DB.Save(&accommodation).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateAccommodationCaches(currentUserID, currentUserRole)

	response.Success(c, convertToAccommodationResponse(accommodation))
}

func ChangeAccommodationStatus(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c)
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	currentUserID, currentUserRole, err := services.GetUserIDFromToken(tokenString)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	var input dto.AccommodationStatusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Dữ liệu đầu vào không hợp lệ")
		return
	}

	var accommodation models.Accommodation
	if err := config.DB.First(&accommodation, input.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if currentUserRole == 2 && accommodation.UserID != currentUserID {
		response.Forbidden(c)
		return
	}

	accommodation.Status = input.Status
	if err := accommodation.ValidateStatus(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := config.DB.Save(&accommodation).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateAccommodationCaches(currentUserID, currentUserRole)

	response.Success(c, accommodation)
}

func invalidateAccommodationCaches(currentUserID uint, currentUserRole int) {
	rdb, err := config.ConnectRedis()
	if err != nil {
		return
	}

	_ = services.DeleteFromRedis(config.Ctx, rdb, "accommodations:all")
	if err := DeleteKeysByPattern(config.Ctx, rdb, "accommodations:detail:*"); err != nil {
		log.Printf("Lỗi khi xóa cache chi tiết chỗ ở: %v", err)
	}
	if currentUserRole == 2 {
		_ = services.DeleteFromRedis(config.Ctx, rdb, fmt.Sprintf("accommodations:host:%d", currentUserID))
	}
}
