package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs a machine code with a user-facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a lower-layer error into a code and message safe
// to show the user. Sensitive details stay out of the payload.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Ocorreu um erro no servidor",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. GORM base errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. PostgreSQL constraint violations

	// 2-1. Unique constraint (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// 2-2. Foreign key constraint (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr, context)
	}

	// 2-3. Not null constraint (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return parseNotNullError(errStr)
	}

	// 3. Network errors from external providers
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "Falha ao conectar com um serviço externo. Tente novamente em instantes",
		}
	}

	// 4. Fallback
	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "Este email já está em uso",
		}
	}

	if strings.Contains(errLower, "cart_items") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "Este produto já está no carrinho",
		}
	}

	if strings.Contains(errLower, "pkey") || strings.Contains(errLower, "primary key") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "Registro já existente. Tente novamente",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "Registro já existente",
	}
}

func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "still referenced") || strings.Contains(errLower, "is still referenced by") {
		if strings.Contains(context, "restaurant") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "O restaurante possui dados vinculados e não pode ser removido",
			}
		}
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "Existem dados vinculados que impedem a remoção",
		}
	}

	if strings.Contains(errLower, "user_id") || strings.Contains(errLower, "fk_users") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "Usuário não encontrado",
		}
	}
	if strings.Contains(errLower, "restaurant_id") || strings.Contains(errLower, "fk_restaurants") {
		return ErrorInfo{
			Code:    RestaurantNotFound,
			Message: "Restaurante não encontrado",
		}
	}
	if strings.Contains(errLower, "product_id") || strings.Contains(errLower, "fk_products") {
		return ErrorInfo{
			Code:    ProductNotFound,
			Message: "Produto não encontrado",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "Registro referenciado não encontrado",
	}
}

func parseNotNullError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") {
		return ErrorInfo{Code: ValidationRequired, Message: "O email é obrigatório"}
	}
	if strings.Contains(errLower, "password") {
		return ErrorInfo{Code: ValidationRequired, Message: "A senha é obrigatória"}
	}
	if strings.Contains(errLower, "name") {
		return ErrorInfo{Code: ValidationRequired, Message: "O nome é obrigatório"}
	}

	return ErrorInfo{
		Code:    ValidationRequired,
		Message: "Campos obrigatórios não preenchidos",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "restaurant"):
		return "Restaurante não encontrado"
	case strings.Contains(contextLower, "product"):
		return "Produto não encontrado"
	case strings.Contains(contextLower, "cart"):
		return "Item do carrinho não encontrado"
	case strings.Contains(contextLower, "order"):
		return "Pedido não encontrado"
	case strings.Contains(contextLower, "address"):
		return "Endereço não encontrado"
	case strings.Contains(contextLower, "user"):
		return "Usuário não encontrado"
	default:
		return "Registro não encontrado"
	}
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "checkout"), strings.Contains(contextLower, "payment"):
		return "Erro ao processar pagamento. Tente novamente"
	case strings.Contains(contextLower, "cart"):
		return "Erro ao atualizar o carrinho. Tente novamente"
	case strings.Contains(contextLower, "verify"):
		return "Erro ao verificar o código. Tente novamente"
	default:
		return "Ocorreu um erro no servidor. Tente novamente em instantes"
	}
}

// ParseAndRespond parses the error and writes the standard error
// payload in one step.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
