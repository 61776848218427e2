package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mithaas/sweetshop-api/internal/domain/enum"
	"github.com/mithaas/sweetshop-api/internal/domain/repository"
	"github.com/mithaas/sweetshop-api/internal/presentation/http/dto/response"
)

// BranchAccessMiddleware resolves the :branch path parameter and enforces
// scoping: admins reach every branch, staff only the branch on their token.
// The resolved code is stored in the context for handlers.
func BranchAccessMiddleware(branchRepo repository.BranchRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := strings.ToUpper(strings.TrimSpace(c.Param("branch")))
		if code == "" {
			response.BadRequest(c, "Branch code is required")
			c.Abort()
			return
		}

		branch, err := branchRepo.GetByCode(c.Request.Context(), code)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if branch == nil {
			response.ErrorWithCode(c, 404, "Branch not found")
			c.Abort()
			return
		}

		role, _ := c.Get("user_role")
		if role != string(enum.RoleAdmin) {
			userBranch, _ := c.Get("user_branch_code")
			if userBranch != code {
				response.Forbidden(c, "Access denied to this branch")
				c.Abort()
				return
			}
		}

		c.Set("branch_code", code)
		c.Set("branch", branch)

		c.Next()
	}
}

// GetBranchCode retrieves the resolved branch code from gin context
func GetBranchCode(c *gin.Context) string {
	code, exists := c.Get("branch_code")
	if !exists {
		return ""
	}
	s, ok := code.(string)
	if !ok {
		return ""
	}
	return s
}
