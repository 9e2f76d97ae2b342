package usecase

// Texts shown to the user. They match what the marketplace screens have
// always displayed.
const (
	MsgInvalidImageURL = "Please enter a valid image URL."
	MsgListingItem     = "Listing item..."
	MsgListed          = "Product successfully listed!"
	MsgListFailed      = "Failed to list item."

	MsgReceived          = "Received successfully!"
	MsgUpdateFailed      = "Failed to update order status."
	MsgUpdateError       = "Error updating order status."
	MsgCancelled         = "Order Cancelled Successfully"
	MsgCancelFailed      = "Failed to Cancel order."
	MsgCancelFailedToast = "Failed to Cancel Order"
	MsgCancelError       = "Error updating the order status"
	MsgCancelErrorToast  = "Error updating the order status."

	MsgNoOrders     = "No orders found"
	MsgLoadFailed   = "An error occurred: "
	MsgReceivedHint = "Enter 'received' after and click on Mark as Received button after receiving your order"

	CurrencySymbol = "SOL"
)
