package orders

const TopicOrderCreated = "order.created"

// Partition by order number so all events of one order stay ordered.
func PartitionKey(orderNumber string) []byte { return []byte(orderNumber) }
