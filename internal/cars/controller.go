package cars

import (
	"errors"
	"net/http"
	"strconv"

	"drivehub/internal/shared/middleware"
	"drivehub/internal/shared/utils/response"
	"drivehub/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service       Service
	validator     *validator.Validate
	maxUploadSize int64
}

func NewController(service Service, maxUploadSize int64) *Controller {
	return &Controller{
		service:       service,
		validator:     response.NewValidator(),
		maxUploadSize: maxUploadSize,
	}
}

func (ctrl *Controller) GetAvailableCars(c *gin.Context) {
	cars, err := ctrl.service.ListAvailable(c.Request.Context())
	if err != nil {
		ctrl.respondError(c, err, "Failed to retrieve available cars")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Available cars retrieved successfully", cars, nil)
}

func (ctrl *Controller) GetAllCars(c *gin.Context) {
	cars, err := ctrl.service.ListAll(c.Request.Context())
	if err != nil {
		ctrl.respondError(c, err, "Failed to retrieve cars")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Cars retrieved successfully", cars, nil)
}

func (ctrl *Controller) GetCar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	car, err := ctrl.service.GetByID(c.Request.Context(), id)
	if err != nil {
		ctrl.respondError(c, err, "Failed to retrieve car")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Car retrieved successfully", car, nil)
}

func (ctrl *Controller) GetAvailableCar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	car, err := ctrl.service.GetAvailableByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCarUnavailable) {
			response.RespondError(c, http.StatusNotFound, "CAR_UNAVAILABLE", "Car is not available for booking")
			return
		}
		ctrl.respondError(c, err, "Failed to retrieve car")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Car retrieved successfully", car, nil)
}

func (ctrl *Controller) SearchCars(c *gin.Context) {
	cars, err := ctrl.service.Search(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		ctrl.respondError(c, err, "Failed to search cars")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Search completed successfully", cars, nil)
}

func (ctrl *Controller) FilterCars(c *gin.Context) {
	var query FilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondValidationError(c, err)
		return
	}

	cars, err := ctrl.service.Filter(c.Request.Context(), query)
	if err != nil {
		ctrl.respondError(c, err, "Failed to filter cars")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Cars filtered successfully", cars, nil)
}

func (ctrl *Controller) GetCarsByType(c *gin.Context) {
	cars, err := ctrl.service.ByType(c.Request.Context(), c.Param("carType"))
	if err != nil {
		ctrl.respondError(c, err, "Failed to retrieve cars by type")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Cars retrieved successfully", cars, nil)
}

func (ctrl *Controller) GetFilterOptions(c *gin.Context) {
	options, err := ctrl.service.FilterOptions(c.Request.Context())
	if err != nil {
		ctrl.respondError(c, err, "Failed to retrieve filter options")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Filter options retrieved successfully", options, nil)
}

func (ctrl *Controller) CheckAvailability(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	availability, err := ctrl.service.Availability(c.Request.Context(), id)
	if err != nil {
		ctrl.respondError(c, err, "Failed to check availability")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Availability retrieved successfully", availability, nil)
}

func (ctrl *Controller) GetStatistics(c *gin.Context) {
	stats, err := ctrl.service.Statistics(c.Request.Context())
	if err != nil {
		ctrl.respondError(c, err, "Failed to retrieve car statistics")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Car statistics retrieved successfully", stats, nil)
}

func (ctrl *Controller) BookCar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)

	car, err := ctrl.service.Reserve(c.Request.Context(), id, userID)
	if err != nil {
		ctrl.respondError(c, err, "Failed to book car")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Car booked successfully", car, nil)
}

func (ctrl *Controller) CreateCar(c *gin.Context) {
	var req CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidationError(c, err)
		return
	}
	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondValidationError(c, err)
		return
	}

	car, err := ctrl.service.Create(c.Request.Context(), &req)
	if err != nil {
		ctrl.respondError(c, err, "Failed to create car")
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Car created successfully", car, nil)
}

func (ctrl *Controller) UpdateCar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidationError(c, err)
		return
	}
	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondValidationError(c, err)
		return
	}

	car, err := ctrl.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		ctrl.respondError(c, err, "Failed to update car")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Car updated successfully", car, nil)
}

func (ctrl *Controller) DeleteCar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctrl.service.Delete(c.Request.Context(), id); err != nil {
		ctrl.respondError(c, err, "Failed to delete car")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Car deleted successfully", nil, nil)
}

func (ctrl *Controller) ToggleAvailability(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	car, err := ctrl.service.ToggleAvailability(c.Request.Context(), id)
	if err != nil {
		ctrl.respondError(c, err, "Failed to toggle availability")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Car availability updated successfully", car, nil)
}

func (ctrl *Controller) UpdatePricing(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req PricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidationError(c, err)
		return
	}
	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondValidationError(c, err)
		return
	}

	car, err := ctrl.service.UpdatePricing(c.Request.Context(), id, req.PricePerDay)
	if err != nil {
		ctrl.respondError(c, err, "Failed to update pricing")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Car pricing updated successfully", car, nil)
}

func (ctrl *Controller) UploadImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if ctrl.maxUploadSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ctrl.maxUploadSize)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.RespondErrorDetails(c, http.StatusBadRequest, response.CodeValidation, "",
			map[string]string{"image": "An image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeValidation, "Uploaded file could not be read")
		return
	}
	defer file.Close()

	car, err := ctrl.service.UpdateImage(c.Request.Context(), id, ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		ctrl.respondError(c, err, "Failed to upload car image")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Car image uploaded successfully", car, nil)
}

func (ctrl *Controller) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrCarNotFound):
		response.RespondError(c, http.StatusNotFound, "CAR_NOT_FOUND", "Car not found")
	case errors.Is(err, ErrCarUnavailable):
		response.RespondError(c, http.StatusConflict, "CAR_UNAVAILABLE", "Car is not available")
	case errors.Is(err, ErrLicensePlateTaken):
		response.RespondError(c, http.StatusConflict, "LICENSE_PLATE_EXISTS", "A car with this license plate already exists")
	case errors.Is(err, ErrInvalidPriceRange):
		response.RespondErrorDetails(c, http.StatusBadRequest, response.CodeValidation, "",
			map[string]string{"minPrice": "Minimum price cannot exceed maximum price"})
	case errors.Is(err, ErrUnsupportedImageType):
		response.RespondError(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Only JPEG, PNG and WebP images are accepted")
	case errors.Is(err, ErrStorageNotConfigured):
		response.RespondError(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Image storage is not available")
	default:
		logger.GetDefault().LogHTTPError(c, err, http.StatusInternalServerError)
		response.RespondError(c, http.StatusInternalServerError, response.CodeInternal, fallback)
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.RespondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid car ID")
		return 0, false
	}
	return uint(id), true
}
