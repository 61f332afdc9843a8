package http

type (
	// StartAlgorithmRequest struct - HTTP request DTO
	StartAlgorithmRequest struct {
		Difficulty string `json:"difficulty" validate:"required,oneof=easy medium hard"`
	}

	// StartSystemDesignRequest struct - HTTP request DTO
	StartSystemDesignRequest struct {
		ScenarioID string `json:"scenarioId" validate:"required,max=128"`
	}

	// StartWorkplaceRequest struct - HTTP request DTO
	StartWorkplaceRequest struct {
		Scenario string `json:"scenario" validate:"required,max=128"`
	}

	// AnswerRequest struct - one candidate turn; code is only used by algorithm interviews
	AnswerRequest struct {
		Content string `json:"content" validate:"required_without=Code,max=20000"`
		Code    string `json:"code" validate:"max=50000"`
	}
)

type (
	// CatalogQueryRequest struct - HTTP query request DTO
	CatalogQueryRequest struct {
		Difficulty string `query:"difficulty" validate:"omitempty,oneof=easy medium hard"`
		Q          string `query:"q" validate:"max=100"`
	}

	// HistoryQueryRequest struct - HTTP query request DTO
	HistoryQueryRequest struct {
		Type  string `query:"type" validate:"omitempty,oneof=algorithm system_design system-design workplace"`
		Skip  int    `query:"skip" validate:"gte=0"`
		Limit int    `query:"limit" validate:"gte=0,lte=100"`
	}
)
