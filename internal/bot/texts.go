package bot

import "regexp"

// Static reply-keyboard buttons outside the filling flow.
const (
	btnContinue = "Продолжить"
	btnMakeLink = "Создать ссылку"
	btnOpenForm = "Открыть форму"
	btnPrivacy  = "Политика конфиденциальности"
)

const (
	textWelcome = `Привет! Этот бот помогает заполнять анкеты Яндекс Форм прямо в чате.

Отправьте боту ссылку на форму, и он превратит её в ссылку для заполнения, ` +
		`а затем проведёт по вопросам по одному.`

	textInstruction = `Как это работает:

1. Пришлите ссылку на форму (forms.yandex.ru/...) — бот создаст ссылку для заполнения.
2. Откройте ссылку или команду /start с кодом формы — бот загрузит вопросы.
3. Нажмите «Заполнить форму» и отвечайте на вопросы по одному.
4. В конце проверьте ответы и отправьте их.

Команды:
/export <код формы> — выгрузить ответы формы файлом
/stats — последние заполнения в этом чате`

	textPrivacy = `Бот не хранит содержимое ваших ответов после отправки формы. ` +
		`Сохраняется только факт заполнения: дата, форма и число отвеченных вопросов.`

	textLinkExample = `Пришлите ссылку на форму, например:
https://forms.yandex.ru/u/65d8f1a2c09c024efe4fb2a5/`

	textOpenForm = `Перейдите по ссылке вида https://t.me/<бот>?start=<код формы> ` +
		`или отправьте команду /start <код формы> — бот загрузит вопросы формы.`

	textNoFormLoaded = `Сначала откройте форму: пришлите ссылку на неё или команду /start с кодом формы.`

	textUseButtons = `Используйте кнопки под сообщением или пришлите ссылку на форму.`
)

// A form id is the first 8-32 character lowercase hex run in the URL.
var formIDPattern = regexp.MustCompile(`[a-f0-9]{8,32}`)

func extractFormID(s string) string {
	return formIDPattern.FindString(s)
}
