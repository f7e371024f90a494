package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/icebreaker/api/http/presenter"
	"github.com/artem13815/icebreaker/pkg/agent"
	"github.com/artem13815/icebreaker/pkg/jobs"
)

type IceBreakerHandler struct {
	pipeline agent.UseCase
	jobs     jobs.UseCase
	deadline time.Duration
	log      *slog.Logger
}

func NewIceBreakerHandler(pipeline agent.UseCase, jobsUC jobs.UseCase, deadline time.Duration, log *slog.Logger) *IceBreakerHandler {
	if log == nil {
		log = slog.Default()
	}
	if deadline <= 0 {
		deadline = 2 * time.Minute
	}
	return &IceBreakerHandler{pipeline: pipeline, jobs: jobsUC, deadline: deadline, log: log.With("module", "http")}
}

// SubmitResponse: ответ на асинхронный запрос.
type SubmitResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status" example:"processing"`
}

func (h *IceBreakerHandler) parseName(c *fiber.Ctx) (string, error) {
	var req IceBreakerRequest
	if err := c.BodyParser(&req); err != nil {
		return "", errBadJSON
	}
	return validateName(req.Name)
}

// Generate синхронно собирает сведения о человеке и возвращает ice breakers.
// @Summary     Generate personalized ice breakers
// @Description Searches the web for the person, reads the profiles found and writes up to 5 conversation starters.
// @Tags        icebreakers
// @Accept      json
// @Produce     json
// @Param       input body IceBreakerRequest true "Person name"
// @Security    BearerAuth
// @Success     200 {object} agent.Result
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     500 {object} presenter.ErrorResponse
// @Failure     504 {object} presenter.ErrorResponse
// @Router      /icebreakers [post]
func (h *IceBreakerHandler) Generate(c *fiber.Ctx) error {
	name, err := h.parseName(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	h.log.Info("ice breaker request", "name", name)

	ctx, cancel := context.WithTimeout(c.UserContext(), h.deadline)
	defer cancel()

	type outcome struct {
		res agent.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- outcome{err: fmt.Errorf("%v", p)}
			}
		}()
		done <- outcome{res: h.pipeline.RunPipeline(ctx, name)}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			h.log.Error("pipeline failed", "name", name, "error", out.err)
			return presenter.Error(c, http.StatusInternalServerError,
				"An error occurred while generating ice breakers: "+out.err.Error())
		}
		return presenter.JSON(c, http.StatusOK, out.res)
	case <-ctx.Done():
		h.log.Error("request timed out", "name", name, "deadline", h.deadline)
		return presenter.Error(c, http.StatusGatewayTimeout,
			"The request took too long to process. Please try again later.")
	}
}

// Submit ставит генерацию в фоновую очередь.
// @Summary     Generate personalized ice breakers asynchronously
// @Description Starts generation in the background and returns a task id for polling.
// @Tags        icebreakers
// @Accept      json
// @Produce     json
// @Param       input body IceBreakerRequest true "Person name"
// @Security    BearerAuth
// @Success     200 {object} SubmitResponse
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     503 {object} presenter.ErrorResponse
// @Router      /icebreakers/async [post]
func (h *IceBreakerHandler) Submit(c *fiber.Ctx) error {
	name, err := h.parseName(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	taskID, err := h.jobs.SubmitAsync(c.UserContext(), name)
	switch {
	case errors.Is(err, jobs.ErrQueueFull), errors.Is(err, jobs.ErrStopped):
		return presenter.Error(c, http.StatusServiceUnavailable, "Too many pending requests, try again later")
	case err != nil:
		h.log.Error("submit failed", "name", name, "error", err)
		return presenter.Error(c, http.StatusInternalServerError, "An error occurred: "+err.Error())
	}
	return presenter.JSON(c, http.StatusOK, SubmitResponse{TaskID: taskID, Status: string(jobs.StatusProcessing)})
}

// Status отдаёт состояние фоновой задачи.
// @Summary     Check the status of an asynchronous request
// @Tags        icebreakers
// @Produce     json
// @Param       task_id path string true "Task id"
// @Security    BearerAuth
// @Success     200 {object} jobs.Job
// @Failure     404 {object} presenter.ErrorResponse
// @Router      /icebreakers/status/{task_id} [get]
func (h *IceBreakerHandler) Status(c *fiber.Ctx) error {
	job, err := h.jobs.GetStatus(c.UserContext(), c.Params("task_id"))
	switch {
	case errors.Is(err, jobs.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "Task not found")
	case errors.Is(err, jobs.ErrExpired):
		return presenter.Error(c, http.StatusNotFound, "Task results expired")
	case err != nil:
		return err
	}
	return presenter.JSON(c, http.StatusOK, job)
}
