// internal/services/seed.go
package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/personadesk/PersonaDesk/internal/models"
)

func mustParseDate(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedCharacters 返回首次启动时的演示角色数据
// 每次调用生成新的id和botId，其余内容固定
func SeedCharacters() []*models.Character {
	return []*models.Character{
		{
			ID:         uuid.NewString(),
			BotID:      "bot_" + uuid.NewString(),
			Avatar:     "https://images.unsplash.com/photo-1494790108755-2616b612b742?w=150&h=150&fit=crop&crop=face",
			Gender:     models.GenderFemale,
			Age:        25,
			Permission: models.PermissionPublic,
			Nickname:   models.NewMultiLangText("小雅助手", "Xiaoya Assistant", "مساعد شياويا"),
			Region:     models.NewMultiLangText("北京", "Beijing", "بكين"),
			Profession: models.NewMultiLangText("AI助手", "AI Assistant", "مساعد ذكي"),
			Introduction: models.NewMultiLangText(
				"我是小雅，一个友善的AI助手，可以帮助您解答问题和提供建议。",
				"I am Xiaoya, a friendly AI assistant who can help answer questions and provide advice.",
				"أنا شياويا، مساعد ذكي ودود يمكنني مساعدتك في الإجابة على الأسئلة وتقديم النصائح.",
			),
			Tags: models.MultiLangTags{
				ZH: []string{"友善", "专业", "高效"},
				EN: []string{"Friendly", "Professional", "Efficient"},
				AR: []string{"ودود", "محترف", "فعال"},
			},
			Greeting: models.NewMultiLangText(
				"你好！我是小雅，很高兴为您服务！有什么可以帮助您的吗？",
				"Hello! I am Xiaoya, nice to serve you! How can I help you?",
				"مرحبا! أنا شياويا، من دواعي سروري خدمتك! كيف يمكنني مساعدتك؟",
			),
			DisplayImages: []string{
				"https://images.unsplash.com/photo-1494790108755-2616b612b742?w=300&h=400&fit=crop",
				"https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=300&h=400&fit=crop",
			},
			SystemPrompt: "You are Xiaoya, a helpful and friendly AI assistant. Always be polite, professional, and try your best to help users with their questions.",
			Whitelist:    []string{"13800138000", "13900139000"},
			CreatedAt:    mustParseDate("2024-01-15"),
			UpdatedAt:    mustParseDate("2024-01-20"),
		},
		{
			ID:         uuid.NewString(),
			BotID:      "bot_" + uuid.NewString(),
			Avatar:     "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face",
			Gender:     models.GenderMale,
			Age:        30,
			Permission: models.PermissionPrivate,
			Nickname:   models.NewMultiLangText("技术专家Tom", "Tech Expert Tom", "خبير التكنولوجيا توم"),
			Region:     models.NewMultiLangText("上海", "Shanghai", "شنغهاي"),
			Profession: models.NewMultiLangText("技术顾问", "Technical Consultant", "مستشار تقني"),
			Introduction: models.NewMultiLangText(
				"我是Tom，专注于技术领域的AI助手，擅长编程、架构设计和技术咨询。",
				"I am Tom, an AI assistant focused on technology, specializing in programming, architecture design, and technical consulting.",
				"أنا توم، مساعد ذكي يركز على التكنولوجيا، متخصص في البرمجة وتصميم البنية التحتية والاستشارات التقنية.",
			),
			Tags: models.MultiLangTags{
				ZH: []string{"技术", "编程", "架构", "专业"},
				EN: []string{"Technology", "Programming", "Architecture", "Professional"},
				AR: []string{"تكنولوجيا", "برمجة", "هندسة معمارية", "محترف"},
			},
			Greeting: models.NewMultiLangText(
				"您好！我是Tom，您的技术顾问。有什么技术问题需要探讨吗？",
				"Hello! I am Tom, your technical consultant. Any technical questions to discuss?",
				"مرحبا! أنا توم، مستشارك التقني. هل لديك أي أسئلة تقنية للمناقشة؟",
			),
			DisplayImages: []string{
				"https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=300&h=400&fit=crop",
				"https://images.unsplash.com/photo-1560250097-0b93528c311a?w=300&h=400&fit=crop",
			},
			SystemPrompt: "You are Tom, a technical expert AI assistant. You specialize in programming, software architecture, and providing technical solutions. Be precise, helpful, and professional.",
			Whitelist:    []string{"13700137000", "13600136000", "13500135000"},
			CreatedAt:    mustParseDate("2024-01-10"),
			UpdatedAt:    mustParseDate("2024-01-18"),
		},
		{
			ID:         uuid.NewString(),
			BotID:      "bot_" + uuid.NewString(),
			Avatar:     "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=150&h=150&fit=crop&crop=face",
			Gender:     models.GenderFemale,
			Age:        28,
			Permission: models.PermissionPublic,
			Nickname:   models.NewMultiLangText("创意设计师Lily", "Creative Designer Lily", "المصممة الإبداعية ليلي"),
			Region:     models.NewMultiLangText("深圳", "Shenzhen", "شنتشن"),
			Profession: models.NewMultiLangText("UI/UX设计师", "UI/UX Designer", "مصمم واجهة المستخدم"),
			Introduction: models.NewMultiLangText(
				"我是Lily，专业的UI/UX设计师，热爱创意设计，可以为您提供设计建议和创意灵感。",
				"I am Lily, a professional UI/UX designer who loves creative design and can provide design advice and creative inspiration.",
				"أنا ليلي، مصممة واجهة مستخدم محترفة أحب التصميم الإبداعي ويمكنني تقديم نصائح التصميم والإلهام الإبداعي.",
			),
			Tags: models.MultiLangTags{
				ZH: []string{"创意", "设计", "美学", "用户体验"},
				EN: []string{"Creative", "Design", "Aesthetic", "User Experience"},
				AR: []string{"إبداعي", "تصميم", "جمالي", "تجربة المستخدم"},
			},
			Greeting: models.NewMultiLangText(
				"嗨！我是Lily，让我们一起创造美好的设计吧！有什么设计需求吗？",
				"Hi! I am Lily, let's create beautiful designs together! Any design needs?",
				"مرحبا! أنا ليلي، دعونا ننشئ تصاميم جميلة معا! هل لديك أي احتياجات تصميمية؟",
			),
			DisplayImages: []string{
				"https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=300&h=400&fit=crop",
				"https://images.unsplash.com/photo-1534528741775-53994a69daeb?w=300&h=400&fit=crop",
			},
			SystemPrompt: "You are Lily, a creative UI/UX designer AI assistant. You are passionate about design, aesthetics, and user experience. Provide creative and practical design advice.",
			Whitelist:    []string{},
			CreatedAt:    mustParseDate("2024-01-12"),
			UpdatedAt:    mustParseDate("2024-01-22"),
		},
	}
}

// SeedTemplates 返回首次启动时的演示模板数据
func SeedTemplates() []*models.Template {
	return []*models.Template{
		{
			ID:   uuid.NewString(),
			Name: models.NewMultiLangText("欢迎消息模板", "Welcome Message Template", "قالب رسالة الترحيب"),
			Description: models.NewMultiLangText(
				"用于新用户的欢迎消息模板",
				"Welcome message template for new users",
				"قالب رسالة ترحيب للمستخدمين الجدد",
			),
			Content: models.NewMultiLangText(
				"欢迎来到我们的平台！我们很高兴您的加入。如果您有任何问题，请随时联系我们。",
				"Welcome to our platform! We are glad to have you join us. If you have any questions, please feel free to contact us.",
				"مرحبا بك في منصتنا! نحن سعداء لانضمامك إلينا. إذا كان لديك أي أسئلة، لا تتردد في الاتصال بنا.",
			),
			Category:  models.CategoryWelcome,
			IsActive:  true,
			CreatedAt: mustParseDate("2024-01-08"),
			UpdatedAt: mustParseDate("2024-01-15"),
		},
		{
			ID:   uuid.NewString(),
			Name: models.NewMultiLangText("技术支持模板", "Technical Support Template", "قالب الدعم التقني"),
			Description: models.NewMultiLangText(
				"技术支持相关的回复模板",
				"Reply template for technical support",
				"قالب الرد للدعم التقني",
			),
			Content: models.NewMultiLangText(
				"感谢您的反馈。我们的技术团队正在处理您的问题，预计在24小时内给您回复。",
				"Thank you for your feedback. Our technical team is working on your issue and we expect to reply within 24 hours.",
				"شكرا لك على ملاحظاتك. فريقنا التقني يعمل على مشكلتك ونتوقع الرد خلال 24 ساعة.",
			),
			Category:  models.CategorySupport,
			IsActive:  true,
			CreatedAt: mustParseDate("2024-01-10"),
			UpdatedAt: mustParseDate("2024-01-12"),
		},
		{
			ID:   uuid.NewString(),
			Name: models.NewMultiLangText("产品介绍模板", "Product Introduction Template", "قالب تقديم المنتج"),
			Description: models.NewMultiLangText(
				"用于介绍产品功能的模板",
				"Template for introducing product features",
				"قالب لتقديم ميزات المنتج",
			),
			Content: models.NewMultiLangText(
				"我们的产品具有以下特点：1. 智能化操作 2. 高效性能 3. 用户友好界面 4. 安全可靠",
				"Our product has the following features: 1. Intelligent operation 2. High efficiency 3. User-friendly interface 4. Safe and reliable",
				"منتجنا له الميزات التالية: 1. تشغيل ذكي 2. كفاءة عالية 3. واجهة سهلة الاستخدام 4. آمن وموثوق",
			),
			Category:  models.CategoryProduct,
			IsActive:  false,
			CreatedAt: mustParseDate("2024-01-05"),
			UpdatedAt: mustParseDate("2024-01-20"),
		},
	}
}

// SeedSettings 返回默认全局配置
func SeedSettings() *models.AppSettings {
	return &models.AppSettings{
		DefaultAvatars: []string{
			"https://images.unsplash.com/photo-1494790108755-2616b612b742?w=150&h=150&fit=crop&crop=face",
			"https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face",
			"https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=150&h=150&fit=crop&crop=face",
			"https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face",
			"https://images.unsplash.com/photo-1534528741775-53994a69daeb?w=150&h=150&fit=crop&crop=face",
			"https://images.unsplash.com/photo-1560250097-0b93528c311a?w=150&h=150&fit=crop&crop=face",
		},
	}
}
