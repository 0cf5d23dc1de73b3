package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/optionform/internal/display"
	"github.com/guttosm/optionform/internal/domain/dto"
	"github.com/guttosm/optionform/internal/form"
	"github.com/guttosm/optionform/internal/middleware"
)

// Submitter starts one pricing submission.
type Submitter interface {
	Submit(ctx context.Context, src form.FieldSource) *form.Submission
}

// ResultReader exposes the result element.
type ResultReader interface {
	Snapshot() display.State
}

// methodOption is one entry of the pricing method select.
type methodOption struct {
	Value string
	Label string
}

// pricingMethods are the routes the pricing API is expected to serve.
var pricingMethods = []methodOption{
	{Value: "blackscholes", Label: "Black-Scholes"},
	{Value: "binomial", Label: "Binomial"},
	{Value: "montecarlo", Label: "Monte Carlo"},
}

type pageData struct {
	Methods []methodOption
	Result  display.State
}

// Handler provides the pricing page, the submit endpoint and the result state.
//
// Responsibilities:
//   - Render the form and the result element
//   - Turn a posted form (or JSON object) into a field source for the submission handler
//   - Answer 204 immediately so the browser stays on the page
type Handler struct {
	submitter Submitter
	result    ResultReader
}

// NewHandler constructs a new Handler instance.
func NewHandler(submitter Submitter, result ResultReader) *Handler {
	return &Handler{submitter: submitter, result: result}
}

// Page handles GET / and renders the pricing form with the current result.
func (h *Handler) Page(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageData{
		Methods: pricingMethods,
		Result:  h.result.Snapshot(),
	})
}

// Submit handles POST /submit.
//
// Accepts application/x-www-form-urlencoded, multipart/form-data or a JSON
// object of string fields. Field contents are not validated.
//
// Responses:
//   - 204 No Content: submission dispatched; X-Submission-ID carries its id.
//   - 400 Bad Request: the body could not be read as a form or JSON object.
//
// Submit godoc
// @Summary      Submit a pricing request
// @Description  Reads the seven pricing fields and posts them to the pricing API in the background. Never redirects.
// @Tags         pricing
// @Accept       x-www-form-urlencoded
// @Accept       json
// @Param        request  body  models.PricingRequest  false  "Pricing fields (JSON variant)"
// @Success      204  "Submission dispatched"
// @Header       204  {string}  X-Submission-ID  "Submission identifier"
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Router       /submit [post]
func (h *Handler) Submit(c *gin.Context) {
	src, err := fieldSource(c)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	sub := h.submitter.Submit(c.Request.Context(), src)

	c.Set(middleware.SubmissionIDKey, sub.ID)
	c.Header("X-Submission-ID", sub.ID)
	c.Status(http.StatusNoContent)
}

// Result handles GET /api/v1/result.
//
// Result godoc
// @Summary      Current result element
// @Description  Text and visibility of the result display
// @Tags         pricing
// @Produce      json
// @Success      200  {object}  dto.ResultResponse  "Success"
// @Router       /api/v1/result [get]
func (h *Handler) Result(c *gin.Context) {
	s := h.result.Snapshot()
	resp := dto.ResultResponse{
		Text:    s.Text,
		Visible: s.Visible,
		Updates: s.Updates,
	}
	if !s.UpdatedAt.IsZero() {
		at := s.UpdatedAt.UTC()
		resp.UpdatedAt = &at
	}
	c.JSON(http.StatusOK, resp)
}

func fieldSource(c *gin.Context) (form.FieldSource, error) {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var fields map[string]string
		if err := c.ShouldBindJSON(&fields); err != nil {
			return nil, err
		}
		return form.Fields(fields), nil
	}

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.Request.ParseMultipartForm(1 << 20); err != nil {
			return nil, err
		}
	} else if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	return form.Values(c.Request.PostForm), nil
}
