package salesorderserver

import (
	"github.com/gin-gonic/gin"

	salesapp "github.com/Apurer/sales-order-api/internal/domains/sales/application"
	salesports "github.com/Apurer/sales-order-api/internal/domains/sales/ports"
	apierrors "github.com/Apurer/sales-order-api/internal/shared/errors"
)

// salesResponder maps sales errors onto problem types before the default fallback.
var salesResponder = apierrors.NewChainedResponder("",
	apierrors.SentinelMapper(salesports.ErrNotFound, apierrors.ErrNotFound),
	apierrors.SentinelMapper(salesports.ErrConflict, apierrors.ErrConflict),
	apierrors.SentinelMapper(salesapp.ErrInvalidInput, apierrors.ErrValidation),
)

func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondBadRequest answers a body that failed to bind.
func respondBadRequest(c *gin.Context, err error) {
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	salesResponder.RespondError(c, err)
}
