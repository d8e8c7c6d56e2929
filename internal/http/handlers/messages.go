package handlers

// The client base is bilingual, so error bodies carry a localized message
// next to the stable machine code.
var messages = map[string]map[string]string{
	"bad_request":  {"en": "invalid request", "zh": "请求参数无效"},
	"unauthorized": {"en": "authentication required", "zh": "未认证或凭证无效"},
	"forbidden":    {"en": "not allowed", "zh": "没有权限"},
	"not_found":    {"en": "not found", "zh": "资源不存在"},
	"conflict":     {"en": "already exists", "zh": "已存在或已处理"},
	"internal":     {"en": "internal error", "zh": "服务器内部错误"},
}

func lookupMessage(code, locale string) string {
	byLocale, ok := messages[code]
	if !ok {
		return code
	}
	if msg, ok := byLocale[locale]; ok {
		return msg
	}
	return byLocale["en"]
}
