package handlers

import (
	"log"
	"net/url"

	"bikinibottom/internal/services"

	"github.com/gofiber/fiber/v2"
)

const genericFailureMessage = "Something went wrong in the Krusty Krab!"

// Outcome channels read by the pages. A redirect carries exactly one.
const (
	successParam = "success"
	errorParam   = "error"
)

func redirectSuccess(c *fiber.Ctx, path, message string) error {
	return redirectWith(c, path, successParam, message)
}

func redirectError(c *fiber.Ctx, path, message string) error {
	return redirectWith(c, path, errorParam, message)
}

func redirectWith(c *fiber.Ctx, path, param, message string) error {
	q := url.Values{}
	q.Set(param, message)
	return c.Redirect(path + "?" + q.Encode())
}

// redirectFailure shows err's user-facing message, or logs err and shows
// fallback when it is an internal failure.
func redirectFailure(c *fiber.Ctx, path string, err error, action, fallback string) error {
	if msg, ok := services.UserMessage(err); ok {
		return redirectError(c, path, msg)
	}
	log.Printf("%s error: %v", action, err)
	return redirectError(c, path, fallback)
}
