package command

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// MessageKey identifies a localized envelope message.
type MessageKey string

const (
	MsgAccountCreated    MessageKey = "account_created"
	MsgAccountExists     MessageKey = "account_exists"
	MsgAccountNotFound   MessageKey = "account_not_found"
	MsgAccountLinked     MessageKey = "account_linked"
	MsgAccountDeleted    MessageKey = "account_deleted"
	MsgAccountsListed    MessageKey = "accounts_listed"
	MsgEmailNotFound     MessageKey = "email_not_found"
	MsgEmailUnverified   MessageKey = "email_unverified"
	MsgEmailVerified     MessageKey = "email_verified"
	MsgIncorrectPassword MessageKey = "incorrect_password"
	MsgLoginSucceeded    MessageKey = "login_succeeded"
	MsgMailSent          MessageKey = "mail_sent"
	MsgLinkCreated       MessageKey = "link_created"
	MsgUserFetched       MessageKey = "user_fetched"
	MsgInvalidRequest    MessageKey = "invalid_request"
	MsgInvalidToken      MessageKey = "invalid_token"
	MsgExpiredToken      MessageKey = "expired_token"
	MsgUnknownCommand    MessageKey = "unknown_command"
	MsgSystemError       MessageKey = "system_error"
)

var englishMessages = map[MessageKey]string{
	MsgAccountCreated:    "Account created successfully",
	MsgAccountExists:     "Account already exists",
	MsgAccountNotFound:   "Account does not exist",
	MsgAccountLinked:     "Account linked successfully",
	MsgAccountDeleted:    "Account deleted successfully",
	MsgAccountsListed:    "Accounts retrieved successfully",
	MsgEmailNotFound:     "Email does not exist",
	MsgEmailUnverified:   "Email has not been verified",
	MsgEmailVerified:     "Email verified successfully",
	MsgIncorrectPassword: "Incorrect password",
	MsgLoginSucceeded:    "Logged in successfully",
	MsgMailSent:          "Mail sent successfully",
	MsgLinkCreated:       "Link created successfully",
	MsgUserFetched:       "Account information retrieved successfully",
	MsgInvalidRequest:    "Invalid request",
	MsgInvalidToken:      "Invalid token",
	MsgExpiredToken:      "Token has expired",
	MsgUnknownCommand:    "Unknown command",
	MsgSystemError:       "System error",
}

var vietnameseMessages = map[MessageKey]string{
	MsgAccountCreated:    "Tạo tài khoản thành công",
	MsgAccountExists:     "Tài khoản đã tồn tại",
	MsgAccountNotFound:   "Tài khoản không tồn tại",
	MsgAccountLinked:     "Liên kết tài khoản thành công",
	MsgAccountDeleted:    "Xóa tài khoản thành công",
	MsgAccountsListed:    "Lấy danh sách tài khoản thành công",
	MsgEmailNotFound:     "Email không tồn tại",
	MsgEmailUnverified:   "Email chưa được xác thực",
	MsgEmailVerified:     "Xác thực email thành công",
	MsgIncorrectPassword: "Mật khẩu không chính xác",
	MsgLoginSucceeded:    "Đăng nhập thành công",
	MsgMailSent:          "Gửi mail thành công",
	MsgLinkCreated:       "Tạo liên kết thành công",
	MsgUserFetched:       "Lấy thông tin tài khoản thành công",
	MsgInvalidRequest:    "Yêu cầu không hợp lệ",
	MsgInvalidToken:      "Mã xác thực không hợp lệ",
	MsgExpiredToken:      "Mã xác thực đã hết hạn",
	MsgUnknownCommand:    "Lệnh không được hỗ trợ",
	MsgSystemError:       "Lỗi hệ thống",
}

// Messages renders envelope messages in English or Vietnamese.
type Messages struct {
	catalog  catalog.Catalog
	matcher  language.Matcher
	fallback language.Tag
}

// NewMessages builds the catalog. defaultLocale is used when a request names
// no supported language.
func NewMessages(defaultLocale string) (*Messages, error) {
	supported := []language.Tag{language.English, language.Vietnamese}
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, table := range map[language.Tag]map[MessageKey]string{
		language.English:    englishMessages,
		language.Vietnamese: vietnameseMessages,
	} {
		for key, text := range table {
			if err := builder.SetString(tag, string(key), text); err != nil {
				return nil, fmt.Errorf("set %s message %s: %w", tag, key, err)
			}
		}
	}

	m := &Messages{catalog: builder, matcher: language.NewMatcher(supported), fallback: language.English}
	if strings.TrimSpace(defaultLocale) != "" {
		tag, ok := m.parse(defaultLocale)
		if !ok {
			return nil, fmt.Errorf("unsupported locale %q", defaultLocale)
		}
		m.fallback = tag
	}
	return m, nil
}

// Resolve picks the first supported language among the candidates, each of
// which may be a bare tag or an Accept-Language header value.
func (m *Messages) Resolve(candidates ...string) language.Tag {
	for _, c := range candidates {
		if tag, ok := m.parse(c); ok {
			return tag
		}
	}
	return m.fallback
}

func (m *Messages) Default() language.Tag {
	return m.fallback
}

func (m *Messages) Text(tag language.Tag, key MessageKey) string {
	p := message.NewPrinter(tag, message.Catalog(m.catalog))
	return p.Sprintf(message.Key(string(key), englishMessages[key]))
}

func (m *Messages) parse(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und, false
	}
	tags, _, err := language.ParseAcceptLanguage(value)
	if err != nil || len(tags) == 0 {
		return language.Und, false
	}
	tag, _, confidence := m.matcher.Match(tags...)
	if confidence == language.No {
		return language.Und, false
	}
	base, _ := tag.Base()
	return language.Make(base.String()), true
}
