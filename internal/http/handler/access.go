package handler

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"docflow/internal/model"
	"docflow/internal/service"
	"docflow/internal/storage"
)

type issueGrantRequest struct {
	StorageID string `json:"storage_id"`
}

// IssueGrant mints a short-lived access grant for a stored document. The
// response pairs the caller-visible document descriptor with the signed token.
func IssueGrant(svc service.AccessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind := paramKind(c)

		var req issueGrantRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		res, err := svc.IssueGrant(c.UserContext(), kind, req.StorageID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrIDRequired):
				return writeError(c, fiber.StatusBadRequest, "STORAGE_ID_REQUIRED", "storage_id is required")
			case errors.Is(err, service.ErrInvalidKind):
				return writeError(c, fiber.StatusBadRequest, "INVALID_KIND", "unknown document kind")
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(res)
	}
}

// FetchDocumentContent redeems a grant: it checks the bearer token against the
// addressed document and, on success, streams the stored bytes back.
//
// Status mapping: any token failure is 401, a valid token for a different
// document is 403, a blob missing at stream-open time is 404.
func FetchDocumentContent(svc service.AccessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind := paramKind(c)
		id := paramID(c)

		rc, info, err := svc.Redeem(c.UserContext(), kind, bearerToken(c), id)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidKind):
				return writeError(c, fiber.StatusBadRequest, "INVALID_KIND", "unknown document kind")
			case errors.Is(err, service.ErrUnauthenticated):
				return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing token")
			case errors.Is(err, service.ErrForbidden):
				return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "token does not grant access to this document")
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return sendObject(c, rc, info, "attachment")
	}
}

// Route params are backed by fasthttp's reusable request buffers; copy them
// before they leave the handler so nothing downstream sees a later request's
// bytes.
func paramKind(c *fiber.Ctx) model.DocumentKind {
	return model.DocumentKind(utils.CopyString(c.Params("kind")))
}

func paramID(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("id"))
}

// bearerToken pulls the credential out of the Authorization header. Anything
// other than a Bearer scheme yields an empty token, which fails downstream as
// unauthenticated.
func bearerToken(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return ""
	}
	return utils.CopyString(strings.TrimSpace(token))
}

// sendObject streams a stored object to the client with its content type and
// a Content-Disposition built from the original filename. Fasthttp closes the
// body stream after the response is written; error paths close it here.
func sendObject(c *fiber.Ctx, rc io.ReadCloser, info storage.ObjectInfo, disposition string) error {
	ct := info.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	c.Set(fiber.HeaderContentType, ct)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("%s; filename=%q", disposition, info.Filename()))

	if info.Size > 0 {
		return c.SendStream(rc, int(info.Size))
	}
	return c.SendStream(rc)
}
