package handler

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/policy"
	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/middleware"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/service"
)

// ResultUseCase - операции над результатами прохождения
type ResultUseCase interface {
	SubmitResult(ctx context.Context, actor policy.Actor, quizID uint, input service.ResultInput) (*entity.QuizResult, *entity.UserProfile, error)
	GetResult(ctx context.Context, actor policy.Actor, resultID uint) (*entity.QuizResult, error)
	ListResults(ctx context.Context, actor policy.Actor) ([]entity.QuizResult, error)
}

// exportHeaders - заголовки столбцов выгрузки результатов
var exportHeaders = []string{"Date", "Quiz", "Score (%)", "Correct answers"}

// ResultHandler обрабатывает отправку и просмотр результатов
type ResultHandler struct {
	resultService ResultUseCase
	now           func() time.Time
}

// NewResultHandler создает новый обработчик результатов
func NewResultHandler(resultService ResultUseCase) *ResultHandler {
	return &ResultHandler{resultService: resultService, now: time.Now}
}

// SubmitResult сохраняет результат и возвращает обновленную статистику
// POST /api/quizzes/:id/submit_result
func (h *ResultHandler) SubmitResult(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	var req dto.SubmitResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, profile, err := h.resultService.SubmitResult(c.Request.Context(), middleware.ActorFromContext(c), quizID, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := &dto.SubmitResultResponse{
		Result:  dto.NewResultResponse(result),
		Profile: dto.NewProfileResponse(profile),
	}
	if claims, ok := middleware.ClaimsFromContext(c); ok {
		resp.Result.Username = claims.Username
		resp.Profile.Username = claims.Username
	}
	c.JSON(http.StatusCreated, resp)
}

// ListResults возвращает результаты пользователя, новые первыми
func (h *ResultHandler) ListResults(c *gin.Context) {
	results, err := h.resultService.ListResults(c.Request.Context(), middleware.ActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResultResponse(results))
}

// GetResult возвращает один результат пользователя
func (h *ResultHandler) GetResult(c *gin.Context) {
	resultID := c.MustGet("resultID").(uint)

	result, err := h.resultService.GetResult(c.Request.Context(), middleware.ActorFromContext(c), resultID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResultResponse(result))
}

// ExportResults выгружает результаты пользователя в CSV или Excel
// GET /api/results/export?format=csv|xlsx
func (h *ResultHandler) ExportResults(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		respondError(c, apperrors.NewValidationError("format", fmt.Sprintf("%q is not a valid choice.", format)))
		return
	}

	actor := middleware.ActorFromContext(c)
	results, err := h.resultService.ListResults(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("results_user_%d_%s", actor.UserID, h.now().Format("2006-01-02"))
	if format == "xlsx" {
		h.exportXLSX(c, results, filename)
		return
	}
	h.exportCSV(c, results, filename)
}

func exportRow(r *entity.QuizResult) []string {
	return []string{
		r.CompletedAt.UTC().Format(time.RFC3339),
		sanitizeForExcel(r.QuizTitle()),
		strconv.FormatFloat(r.Score, 'f', 2, 64),
		strconv.Itoa(r.CorrectAnswers),
	}
}

// exportCSV экспортирует результаты в CSV с правильным экранированием спецсимволов
func (h *ResultHandler) exportCSV(c *gin.Context, results []entity.QuizResult, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Status(http.StatusOK)

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	if err := writer.Write(exportHeaders); err != nil {
		log.Printf("[ResultHandler] Ошибка записи заголовков CSV: %v", err)
		return
	}
	for i := range results {
		if err := writer.Write(exportRow(&results[i])); err != nil {
			log.Printf("[ResultHandler] Ошибка записи строки CSV %d: %v", i, err)
			return
		}
	}
}

// exportXLSX экспортирует результаты в Excel с использованием StreamWriter
func (h *ResultHandler) exportXLSX(c *gin.Context, results []entity.QuizResult, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Results"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		respondError(c, fmt.Errorf("failed to rename sheet: %w", err))
		return
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		respondError(c, fmt.Errorf("failed to create stream writer: %w", err))
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, v := range exportHeaders {
		headers[i] = v
	}
	if err := sw.SetRow("A1", headers); err != nil {
		respondError(c, fmt.Errorf("failed to write xlsx headers: %w", err))
		return
	}

	for i := range results {
		r := &results[i]
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			r.CompletedAt.UTC().Format(time.RFC3339),
			sanitizeForExcel(r.QuizTitle()),
			r.Score,
			r.CorrectAnswers,
		}
		if err := sw.SetRow(cell, row); err != nil {
			respondError(c, fmt.Errorf("failed to write xlsx row %d: %w", i+2, err))
			return
		}
	}

	if err := sw.Flush(); err != nil {
		respondError(c, fmt.Errorf("failed to flush xlsx: %w", err))
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[ResultHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
