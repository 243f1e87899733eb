package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hrworks/employee-voice-api/internal/constants"
	"github.com/hrworks/employee-voice-api/internal/database"
	"github.com/hrworks/employee-voice-api/internal/models"
	"github.com/hrworks/employee-voice-api/internal/roles"
)

// RequireFormAccess checks that the form exists and that the caller has a
// valid designation, then loads the form into the context.
func RequireFormAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		formIDStr := c.Param("id")
		formID, err := strconv.ParseUint(formIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid form ID",
			})
			c.Abort()
			return
		}

		employeeID, exists := GetEmployeeID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		var employee models.Employee
		if err := database.GetDB().First(&employee, employeeID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		if !roles.CanManage(employee.DesignationID) {
			// Return 404 instead of 403 to avoid leaking form existence
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Form not found",
			})
			c.Abort()
			return
		}

		var form models.Form
		if err := database.GetDB().
			Preload("Creator").
			First(&form, formID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Form not found",
			})
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyForm, form)
		c.Next()
	}
}
