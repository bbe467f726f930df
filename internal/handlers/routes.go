package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/helpdesk/internal/models"
	"github.com/localnerve/helpdesk/internal/services"
	"gorm.io/gorm"
)

// RegisterRoutes mounts every API route on api, normally the /api group
func RegisterRoutes(api fiber.Router, db *gorm.DB, bcryptCost int) {
	tickets := &TicketHandler{DB: db}
	comments := &CommentHandler{DB: db}
	firms := &FirmHandler{DB: db}
	users := &UserHandler{Users: services.NewUserService(db, bcryptCost)}
	products := &ProductHandler{DB: db}
	tags := &TagHandler{DB: db}
	events := &EventHandler{DB: db}

	t := api.Group("/tickets")
	t.Get("/", tickets.ListTickets)
	t.Post("/", tickets.CreateTicket)
	t.Get("/:id", tickets.GetTicket)
	t.Put("/:id", tickets.UpdateTicket)
	t.Delete("/:id", tickets.DeleteTicket)
	t.Post("/:id/assign/:userId", tickets.AssignTicket)
	t.Post("/:id/status/:statusId", tickets.ChangeTicketStatus)
	t.Get("/:id/tags", tickets.ListTicketTags)
	t.Post("/:id/tag/:tagId", tickets.AddTicketTag)
	t.Delete("/:id/tag/:tagId", tickets.RemoveTicketTag)
	t.Get("/:id/events", tickets.ListTicketEvents)
	t.Get("/:id/comments", comments.ListComments)
	t.Post("/:id/comments", comments.AddComment)
	t.Delete("/:id/comments/:commentId", comments.DeleteComment)

	f := api.Group("/firms")
	f.Get("/", firms.ListFirms)
	f.Post("/", firms.CreateFirm)
	f.Get("/:id", firms.GetFirm)
	f.Put("/:id", firms.UpdateFirm)
	f.Delete("/:id", firms.DeleteFirm)
	f.Get("/:id/children", firms.ListChildren)
	f.Get("/:id/products", firms.ListProducts)
	f.Post("/:id/products/:productId", firms.AddProduct)
	f.Delete("/:id/products/:productId", firms.RemoveProduct)

	u := api.Group("/users")
	u.Get("/", users.ListUsers)
	u.Post("/", users.CreateUser)
	u.Get("/:id", users.GetUser)
	u.Put("/:id", users.UpdateUser)
	u.Delete("/:id", users.DeleteUser)

	p := api.Group("/products")
	p.Get("/", products.ListProducts)
	p.Post("/", products.CreateProduct)
	p.Get("/:id", products.GetProduct)
	p.Put("/:id", products.UpdateProduct)
	p.Delete("/:id", products.DeleteProduct)

	g := api.Group("/tags")
	g.Get("/", tags.ListTags)
	g.Post("/", tags.CreateTag)
	g.Get("/:id", tags.GetTag)
	g.Put("/:id", tags.UpdateTag)
	g.Delete("/:id", tags.DeleteTag)

	api.Get("/events", events.ListEvents)

	lookups := api.Group("/lookups")
	(&LookupHandler[models.TicketStatus, *models.TicketStatus]{DB: db, What: "status", Remove: services.DeleteStatus}).
		Register(lookups.Group("/statuses"))
	(&LookupHandler[models.TicketPriority, *models.TicketPriority]{DB: db, What: "priority", Remove: services.DeletePriority}).
		Register(lookups.Group("/priorities"))
	(&LookupHandler[models.Privilege, *models.Privilege]{DB: db, What: "privilege", Remove: services.DeletePrivilege}).
		Register(lookups.Group("/privileges"))
	(&LookupHandler[models.EntityType, *models.EntityType]{DB: db, What: "entity type"}).
		Register(lookups.Group("/entity-types"))
	(&LookupHandler[models.EventType, *models.EventType]{DB: db, What: "event type"}).
		Register(lookups.Group("/event-types"))
}
