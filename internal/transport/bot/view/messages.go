package view

const StartMessage = `👋 <b>Deal Radar</b>

Слежу за eBay по вашим запросам и присылаю выгодные лоты в этот чат.

<b>Мониторы</b>
/monitor [all|auction|bin] <i>запрос</i> — новый монитор в этом чате
/monitors — мониторы чата
/unmonitor <i>id</i> — удалить монитор
Первое слово all, auction или bin задаёт тип лотов, если после него есть запрос. Тип и запрос монитора видны в ответе.

<b>Ставки</b>
/watch <i>id или ссылка</i> — следить за ценой лота
/bid <i>id или ссылка</i> <i>максимум</i> — следить за своей ставкой
/mybids — ваши записи

/status — состояние мониторинга
/run <i>deal_scan|bid_check</i> — запустить цикл вне очереди`

const (
	MonitorUsage    = "❌ Использование: /monitor [all|auction|bin] <i>запрос</i>"
	MonitorCreated  = "✅ Монитор <code>#%d</code> создан\nЗапрос: <b>%s</b>\nТип: %s"
	MonitorsEmpty   = "📭 В этом чате нет мониторов"
	MonitorsHeader  = "🔎 <b>Мониторы чата</b>\n\n"
	MonitorLine     = "<code>#%d</code> %s <i>(%s)</i>\n"
	UnmonitorUsage  = "❌ Использование: /unmonitor <i>id</i>"
	MonitorRemoved  = "🗑 Монитор <code>#%d</code> удалён"
	MonitorNotFound = "⚠️ Монитор <code>#%d</code> не найден в этом чате"

	WatchUsage      = "❌ Использование: /watch <i>id или ссылка</i>"
	WatchCreated    = "👀 Слежу за лотом <code>%s</code>"
	WatchExists     = "ℹ️ Лот <code>%s</code> уже отслеживается (%s)"
	BidUsage        = "❌ Использование: /bid <i>id или ссылка</i> <i>максимум</i>"
	BidInvalidMax   = "❌ Максимум должен быть положительным числом, например 25.50"
	BidCreated      = "🔨 Ставка на <code>%s</code> отслеживается, максимум <b>$%s</b>"
	BidsEmpty       = "📭 У вас нет отслеживаемых лотов"
	BidsHeader      = "🔨 <b>Ваши лоты</b>\n\n"
	BidLine         = "<code>#%d</code> <code>%s</code> — %s, макс. $%s, цена $%s\n"
	MaxBidRaised    = "Максимум поднят до $%s"
	CallbackFailed  = "❌ Не получилось, попробуйте позже"
	InvalidItemID   = "❌ Не похоже на id лота или ссылку eBay"
	ChatAdminsOnly  = "⛔ Мониторами чата управляют только администраторы"
	InternalFailure = "❌ Внутренняя ошибка, попробуйте позже"
)

const StatusTemplate = `📊 <b>Статус</b>

🔁 <b>Мониторинг:</b> %s
%s
🔎 <b>Мониторов:</b> %d
👀 <b>Отправлено лотов:</b> %d
🔨 <b>Ставки:</b> %s`

const LoopLineTemplate = "• <b>%s</b> каждые %s, последний запуск: %s%s\n"

const (
	RunUsage = "❌ Использование: /run deal_scan|bid_check"
	RunDone  = "✅ Цикл <b>%s</b> выполнен за %s"
	RunBusy  = "⏳ Цикл <b>%s</b> уже выполняется"
	RunError = "⚠️ Цикл <b>%s</b> завершился с ошибкой: %s"
)
