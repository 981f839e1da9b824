package admin

import (
	"errors"

	"github.com/fandom-mart/internal/http/response"
	"github.com/fandom-mart/internal/service"

	"github.com/gin-gonic/gin"
)

type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var catalogErrorRules = []mappedHandlerError{
	{target: service.ErrFandomNotFound, code: response.CodeNotFound, key: "error.fandom_not_found"},
	{target: service.ErrFandomInUse, code: response.CodeConflict, key: "error.fandom_in_use"},
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, key: "error.category_not_found"},
	{target: service.ErrCategoryInUse, code: response.CodeConflict, key: "error.category_in_use"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrSlugExists, code: response.CodeConflict, key: "error.slug_exists"},
	{target: service.ErrCodeExists, code: response.CodeConflict, key: "error.code_exists"},
	{target: service.ErrCatalogCodeInvalid, code: response.CodeBadRequest, key: "error.catalog_code_invalid"},
	{target: service.ErrProductPriceInvalid, code: response.CodeBadRequest, key: "error.product_price_invalid"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
}

var ticketErrorRules = []mappedHandlerError{
	{target: service.ErrTicketNotFound, code: response.CodeNotFound, key: "error.ticket_not_found"},
	{target: service.ErrTicketStatusInvalid, code: response.CodeBadRequest, key: "error.ticket_status_invalid"},
}

var customRequestErrorRules = []mappedHandlerError{
	{target: service.ErrCustomRequestNotFound, code: response.CodeNotFound, key: "error.custom_request_not_found"},
	{target: service.ErrCustomRequestStatusInvalid, code: response.CodeBadRequest, key: "error.custom_request_status_invalid"},
	{target: service.ErrCustomRequestQuoteInvalid, code: response.CodeBadRequest, key: "error.custom_request_quote_invalid"},
}

func respondCatalogError(c *gin.Context, err error, fallbackKey string) {
	respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, fallbackKey)
}
