package api

import "time"

// SenderType identifies who authored a message.
type SenderType string

const (
	SenderCustomer SenderType = "customer"
	SenderAgent    SenderType = "agent"
	SenderBot      SenderType = "bot"
)

// Conversation status values as reported by the backend.
const (
	ConversationOpen   = "open"
	ConversationClosed = "closed"
)

// Media types the backend attaches to messages.
const (
	MediaImage = "image"
	MediaPDF   = "pdf"
	MediaFile  = "file"
)

// Customer is a backend-owned contact record. Read-only from this layer.
type Customer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is a single chat transcript entry. ID is zero for messages the
// backend has not acknowledged yet; Timestamp is nil in the same case.
type Message struct {
	ID             int        `json:"id,omitempty"`
	ConversationID int        `json:"conversation_id"`
	Content        string     `json:"content,omitempty"`
	MediaURL       string     `json:"media_url,omitempty"`
	MediaType      string     `json:"media_type,omitempty"`
	SenderType     SenderType `json:"sender_type"`
	Timestamp      *time.Time `json:"timestamp,omitempty"`
}

// Conversation is a customer chat thread. Messages may be partially loaded;
// the full transcript comes from Client.Messages.
type Conversation struct {
	ID         int        `json:"id"`
	CustomerID int        `json:"customer_id"`
	Status     string     `json:"status"`
	OrderID    *int       `json:"order_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
	Messages   []Message  `json:"messages"`
	Customer   *Customer  `json:"customer,omitempty"`
}

// LastActivity returns updated_at when present, created_at otherwise.
func (c *Conversation) LastActivity() time.Time {
	if c.UpdatedAt != nil {
		return *c.UpdatedAt
	}
	return c.CreatedAt
}

// LastMessage returns the most recent message of the thread, or nil.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}

// ConversationMetrics is the server-computed support aggregate, re-fetched
// periodically and replaced wholesale on the client.
type ConversationMetrics struct {
	TotalConversations          int     `json:"total_conversations"`
	OpenConversations           int     `json:"open_conversations"`
	ClosedConversations         int     `json:"closed_conversations"`
	AbandonedConversations      int     `json:"abandoned_conversations"`
	RespondedConversations      int     `json:"responded_conversations"`
	UnansweredConversations     int     `json:"unanswered_conversations"`
	AvgFirstResponseTimeSeconds float64 `json:"avg_first_response_time_seconds"`
	AvgResolutionTimeSeconds    float64 `json:"avg_resolution_time_seconds"`
	ConversationsOutOfSLA       int     `json:"conversations_out_of_sla"`
	ConversationsWithOrders     int     `json:"conversations_with_orders"`
	ConversionRate              float64 `json:"conversion_rate"`
	TotalRevenueFromConvs       float64 `json:"total_revenue_from_conversations"`
	AvgTicketFromConvs          float64 `json:"avg_ticket_from_conversations"`
}

// ServiceMetrics is the lighter support aggregate used by the reports view.
type ServiceMetrics struct {
	TotalConversations         int     `json:"total_conversations"`
	OpenConversations          int     `json:"open_conversations"`
	ClosedConversations        int     `json:"closed_conversations"`
	TotalMessages              int     `json:"total_messages"`
	AvgMessagesPerConversation float64 `json:"avg_messages_per_conversation"`
}

// OrderItem is a line item inside an order.
type OrderItem struct {
	ID          int     `json:"id"`
	OrderID     int     `json:"order_id"`
	ProductName string  `json:"product_name,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Order is a backend sales order, optionally linked to a conversation.
type Order struct {
	ID            int         `json:"id"`
	CustomerID    int         `json:"customer_id"`
	TotalAmount   float64     `json:"total_amount"`
	Status        string      `json:"status"`
	PaymentMethod string      `json:"payment_method,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	Items         []OrderItem `json:"items"`
	Customer      *Customer   `json:"customer,omitempty"`
}

// SalesByDay is a daily revenue point for the dashboard chart.
type SalesByDay struct {
	Date  time.Time `json:"date"`
	Total float64   `json:"total"`
}

// SalesByStatus counts orders per status.
type SalesByStatus struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// SalesByChannel splits revenue by sales channel (WhatsApp vs. balcão).
type SalesByChannel struct {
	Channel    string  `json:"channel"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}

// TopProduct is a best-seller entry.
type TopProduct struct {
	ProductName  string  `json:"product_name"`
	Quantity     int     `json:"quantity"`
	TotalRevenue float64 `json:"total_revenue"`
}

// DashboardMetrics is the landing-page aggregate.
type DashboardMetrics struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalOrders    int     `json:"total_orders"`
	TotalCustomers int     `json:"total_customers"`
	TicketMedio    float64 `json:"ticket_medio"`

	RevenueToday             float64 `json:"revenue_today"`
	RevenueMonth             float64 `json:"revenue_month"`
	OrdersToday              int     `json:"orders_today"`
	OrdersMonth              int     `json:"orders_month"`
	GrossProfit              float64 `json:"gross_profit"`
	GrossMarginPercent       float64 `json:"gross_margin_percent"`
	GrowthVsLastMonthPercent float64 `json:"growth_vs_last_month_percent"`

	ActiveConversations      int     `json:"active_conversations"`
	PendingOrders            int     `json:"pending_orders"`
	InProgressOrders         int     `json:"in_progress_orders"`
	LateOrders               int     `json:"late_orders"`
	CancellationRate         float64 `json:"cancellation_rate"`
	WhatsappOrdersPercentage float64 `json:"whatsapp_orders_percentage"`

	SalesByDay     []SalesByDay     `json:"sales_by_day"`
	SalesByStatus  []SalesByStatus  `json:"sales_by_status"`
	SalesByChannel []SalesByChannel `json:"sales_by_channel"`
	TopProducts    []TopProduct     `json:"top_products"`
}

// SalesSummary is the headline block of the sales report.
type SalesSummary struct {
	Revenue       float64 `json:"revenue"`
	Orders        int     `json:"orders"`
	TicketMedio   float64 `json:"ticket_medio"`
	AverageMargin float64 `json:"average_margin"`
	TotalDiscount float64 `json:"total_discount"`
	TotalCost     float64 `json:"total_cost"`
	GrossProfit   float64 `json:"gross_profit"`
}

// SalesTimeSeries is a revenue/order-count point per bucket (day/week/month).
type SalesTimeSeries struct {
	Date    time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
	Orders  int       `json:"orders"`
}

// SalesByPaymentMethod splits sales by payment method.
type SalesByPaymentMethod struct {
	PaymentMethod string  `json:"payment_method"`
	Total         float64 `json:"total"`
	Count         int     `json:"count"`
}

// MonthComparison compares the current month against the previous one.
type MonthComparison struct {
	CurrentRevenue  float64 `json:"current_revenue"`
	PreviousRevenue float64 `json:"previous_revenue"`
	CurrentOrders   int     `json:"current_orders"`
	PreviousOrders  int     `json:"previous_orders"`
}

// PeriodFinancial is the revenue/profit/orders triple for a fixed window.
type PeriodFinancial struct {
	Revenue     float64 `json:"revenue"`
	GrossProfit float64 `json:"gross_profit"`
	Orders      int     `json:"orders"`
}

// SalesByProduct is a per-product profitability row.
type SalesByProduct struct {
	ProductName   string  `json:"product_name"`
	Quantity      int     `json:"quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalCost     float64 `json:"total_cost"`
	TotalProfit   float64 `json:"total_profit"`
	MarginPercent float64 `json:"margin_percent"`
}

// SalesByHour distributes orders across the hours of the day.
type SalesByHour struct {
	Hour    int     `json:"hour"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// SalesByWeekDay distributes orders across the days of the week.
type SalesByWeekDay struct {
	DayOfWeek int     `json:"day_of_week"`
	DayName   string  `json:"day_name"`
	Count     int     `json:"count"`
	Revenue   float64 `json:"revenue"`
}

// SalesMetrics is the full sales report for a period.
type SalesMetrics struct {
	PeriodStart     time.Time              `json:"period_start"`
	PeriodEnd       time.Time              `json:"period_end"`
	Summary         SalesSummary           `json:"summary"`
	ByDay           []SalesTimeSeries      `json:"by_day"`
	ByWeek          []SalesTimeSeries      `json:"by_week"`
	ByMonth         []SalesTimeSeries      `json:"by_month"`
	Comparison      MonthComparison        `json:"comparison"`
	ByPaymentMethod []SalesByPaymentMethod `json:"by_payment_method"`
	ByChannel       []SalesByChannel       `json:"by_channel"`
	Today           PeriodFinancial        `json:"today"`
	CurrentWeek     PeriodFinancial        `json:"current_week"`
	CurrentMonth    PeriodFinancial        `json:"current_month"`
	ByProduct       []SalesByProduct       `json:"by_product"`
	ByHour          []SalesByHour          `json:"by_hour"`
	ByWeekday       []SalesByWeekDay       `json:"by_weekday"`
}

// CustomerSummary is the headline block of the customer report.
type CustomerSummary struct {
	TotalCustomers       int     `json:"total_customers"`
	ActiveCustomers      int     `json:"active_customers"`
	InactiveCustomers    int     `json:"inactive_customers"`
	NewCustomers         int     `json:"new_customers"`
	RepeatRate           float64 `json:"repeat_rate"`
	AvgOrdersPerCustomer float64 `json:"avg_orders_per_customer"`
	AvgTicketPerCustomer float64 `json:"avg_ticket_per_customer"`
	RecurringCustomers   int     `json:"recurring_customers"`
	OccasionalCustomers  int     `json:"occasional_customers"`
}

// CustomersTimeSeries counts new customers per bucket.
type CustomersTimeSeries struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// TopCustomer is a highest-revenue customer row.
type TopCustomer struct {
	CustomerID   int     `json:"customer_id"`
	Name         string  `json:"name"`
	TotalRevenue float64 `json:"total_revenue"`
	OrdersCount  int     `json:"orders_count"`
	AvgTicket    float64 `json:"avg_ticket"`
}

// CustomerMetrics is the customer analytics report for a period.
type CustomerMetrics struct {
	PeriodStart          time.Time             `json:"period_start"`
	PeriodEnd            time.Time             `json:"period_end"`
	Summary              CustomerSummary       `json:"summary"`
	NewCustomersByPeriod []CustomersTimeSeries `json:"new_customers_by_period"`
	TopCustomers         []TopCustomer         `json:"top_customers"`
}

// OrderReportItem is a flattened order row for the orders report table.
type OrderReportItem struct {
	ID              int       `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	CustomerName    string    `json:"customer_name"`
	SalespersonName string    `json:"salesperson_name,omitempty"`
	TotalAmount     float64   `json:"total_amount"`
	Status          string    `json:"status"`
	PaymentMethod   string    `json:"payment_method,omitempty"`
	ItemsCount      int       `json:"items_count"`
}

// Salesperson is a report filter option.
type Salesperson struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// BroadcastResult is the backend's acknowledgement of an encarte broadcast.
type BroadcastResult struct {
	SentTo []int `json:"sent_to"`
}
