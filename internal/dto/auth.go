package dto

// TokenDTO carries an issued JWT in API responses.
type TokenDTO struct {
	Token string `json:"token"`
}
