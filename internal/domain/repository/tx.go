package repository

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Movements     InventoryMovementRepository
	Stock         StockRepository
	Products      ProductRepository
	Deliveries    DeliveryRepository
	Prescriptions PrescriptionRepository
	Returns       ReturnRepository
	Receipts      PurchaseReceiptRepository
	Transfers     TransferRepository
	Scores        SupplierScoreRepository
}
