package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var zhHans = map[string]string{
	// Tray
	"Open %s":                        "打开 %s",
	"Notifications for new messages": "新消息通知",
	"Launch at login":                "开机自启动",
	"Server settings...":             "设置服务器地址...",
	"Check for Updates...":           "检查更新...",
	"About %s":                       "关于 %s",
	"Quit":                           "退出",

	// About dialog
	"%s Desktop": "%s 桌面客户端",
	"Version: %s\n\nElegant real-time chat\n\n© 2024 FigoChat Team": "版本: %s\n\n优雅的实时聊天应用\n\n© 2024 FigoChat Team",
	"OK": "确定",

	// Application menu
	"Edit":               "编辑",
	"View":               "视图",
	"Window":             "窗口",
	"Help":               "帮助",
	"Visit Website":      "访问官网",
	"Report an Issue":    "反馈问题",
	"Developer Tools":    "开发者工具",
	"Bring All to Front": "全部置于顶层",

	// Updater
	"New version available":   "发现新版本",
	"%s %s has been released": "%s %s 已发布",
	"Current version: %s\nNew version: %s\n\nDownload the update now?": "当前版本: %s\n新版本: %s\n\n是否立即下载更新？",
	"Download Now":                        "立即下载",
	"Remind Me Later":                     "稍后提醒",
	"Update ready":                        "更新已就绪",
	"The new version has been downloaded": "新版本已下载完成",
	"Restart the application to finish installing the update": "重启应用以完成更新安装",
	"Restart Now":                        "立即重启",
	"Restart Later":                      "稍后重启",
	"Check for Updates":                  "检查更新",
	"You are running the latest version": "当前已是最新版本",
	"Update check failed":                "检查更新失败",
	"Unable to reach the update server, please try again later": "无法连接到更新服务器，请稍后重试",
}

func init() {
	for key, msg := range zhHans {
		if err := message.SetString(language.SimplifiedChinese, key, msg); err != nil {
			panic(err)
		}
	}
}
