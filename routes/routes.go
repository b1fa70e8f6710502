package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/AIABHISHEK/task-management-api/controllers"
	"github.com/AIABHISHEK/task-management-api/middleware"
	"github.com/AIABHISHEK/task-management-api/utils"
)

// RegisterRoutes wires the HTTP surface. Auth routes are public; task and
// subtask routes sit behind the bearer-token middleware.
func RegisterRoutes(
	r *gin.Engine,
	tokens *utils.JWTManager,
	auth *controllers.AuthController,
	tasks *controllers.TaskController,
	subtasks *controllers.SubtaskController,
) {
	authRoutes := r.Group("/api/auth")
	{
		authRoutes.POST("/register", auth.Register)
		authRoutes.POST("/login", auth.Login)
	}

	taskRoutes := r.Group("/api/tasks")
	taskRoutes.Use(middleware.AuthMiddleware(tokens))
	{
		taskRoutes.POST("/create", tasks.CreateTask)
		taskRoutes.GET("/get", tasks.GetTasks)
		taskRoutes.PATCH("/update/:id", tasks.UpdateTask)
		taskRoutes.DELETE("/delete/:id", tasks.DeleteTask)
	}

	subtaskRoutes := r.Group("/api/subtasks")
	subtaskRoutes.Use(middleware.AuthMiddleware(tokens))
	{
		subtaskRoutes.POST("/create", subtasks.CreateSubtask)
		subtaskRoutes.GET("/get", subtasks.GetSubtasks)
		subtaskRoutes.PATCH("/update/:id", subtasks.UpdateSubtask)
		subtaskRoutes.DELETE("/delete/:id", subtasks.DeleteSubtask)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
